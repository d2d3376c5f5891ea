package sheets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetCellValue(sheet, "A1", "Kızılay"))
	require.NoError(t, f.SetCellHyperLink(sheet, "A1", "https://goo.gl/maps/abc", "External"))
	orange, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FF9900"}, Pattern: 1},
	})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "B1", "B1", orange))
	require.NoError(t, f.SetCellValue(sheet, "C2", "Battaniye lazım"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	grid, err := ReadWorkbook(buf, "")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(grid.Rows), 2)
	require.GreaterOrEqual(t, len(grid.Rows[0].Cells), 3)

	name := grid.Rows[0].Cells[0]
	assert.Equal(t, "Kızılay", name.Text)
	assert.Equal(t, "https://goo.gl/maps/abc", name.Hyperlink)

	bg := grid.Rows[0].Cells[1].Background
	require.NotNil(t, bg)
	require.NotNil(t, bg.Red)
	require.NotNil(t, bg.Green)
	assert.InDelta(t, 1.0, *bg.Red, 1e-5)
	assert.InDelta(t, 0.6, *bg.Green, 1e-5)
	assert.Nil(t, bg.Blue)

	assert.Equal(t, "Battaniye lazım", grid.Rows[1].Cells[2].Text)
}

func TestReadWorkbook_NotAWorkbook(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("İsim,Malzeme"), "")
	assert.Error(t, err)
}

func TestColorFromHex(t *testing.T) {
	c := colorFromHex("#999999")
	require.NotNil(t, c)
	assert.InDelta(t, 0.6, *c.Red, 1e-5)
	assert.InDelta(t, 0.6, *c.Green, 1e-5)
	assert.InDelta(t, 0.6, *c.Blue, 1e-5)

	c = colorFromHex("FF00FF00")
	require.NotNil(t, c)
	assert.Nil(t, c.Red)
	assert.Equal(t, 1.0, *c.Green)
	assert.Nil(t, c.Blue)

	c = colorFromHex("93C47D")
	require.NotNil(t, c)
	assert.InDelta(t, 0.5764706, *c.Red, 1e-5)
	assert.InDelta(t, 0.76862746, *c.Green, 1e-5)
	assert.InDelta(t, 0.49019608, *c.Blue, 1e-5)

	assert.Nil(t, colorFromHex(""))
	assert.Nil(t, colorFromHex("zzzzzz"))
}
