package domain

// Comparable is a read-only reference property shown on the landing page map
// next to the seller's own home.
type Comparable struct {
	ID        string  `json:"id"`
	Nid       int64   `json:"nid"`
	Direccion string  `json:"direccion"`
	Precio    float64 `json:"precio"`
	Area      float64 `json:"area"`
	Latitud   float64 `json:"latitud"`
	Longitud  float64 `json:"longitud"`
	Features  string  `json:"features"`
}
