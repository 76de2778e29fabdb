package geocoder

// searchResult элемент ответа Nominatim-совместимого провайдера
type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
