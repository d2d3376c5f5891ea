package types

// Location is where a collection site can be found.
// Lat/Long are required when a site is first created from the spreadsheet,
// after that they are carried as-is.
type Location struct {
	City              string  `firestore:"city" json:"city"`
	District          string  `firestore:"district" json:"district"`
	AdditionalAddress string  `firestore:"additionalAddress" json:"additionalAddress"`
	Lat               float64 `firestore:"lat" json:"latitude"`
	Long              float64 `firestore:"long" json:"longitude"`
}
