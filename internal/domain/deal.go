package domain

// DealRecord is a raw CRM deal as HubSpot returns it: an object id plus a
// flat bag of property values. HubSpot serializes every property as a string,
// including numeric ones, so nothing here is typed beyond string.
type DealRecord struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// Property returns a raw property value, "" when absent.
func (d *DealRecord) Property(name string) string {
	if d == nil || d.Properties == nil {
		return ""
	}
	return d.Properties[name]
}

// DealProjection is the reconciled view of a deal served to the landing page.
// Prices are integer currency units re-stringified for the frontend, matching
// the CRM's own string-typed convention. Nil pointers serialize as null and
// mean "no data", never "0".
type DealProjection struct {
	DealUUID      string `json:"deal_uuid"`
	HubspotDealID string `json:"hubspotDealId"`
	Country       string `json:"country"`
	Pipeline      string `json:"pipeline"`

	PrecioComite         *string `json:"precio_comite"`
	PrecioComiteOriginal *string `json:"precio_comite_original"`

	// Resolved installment ladder (1/3/6/9 payments). For Mexico the 3/6/9
	// tiers are always "0" and NegocioAplicaBnpl is "no".
	Bnpl1 string `json:"bnpl_1"`
	Bnpl3 string `json:"bnpl_3"`
	Bnpl6 string `json:"bnpl_6"`
	Bnpl9 string `json:"bnpl_9"`

	LimiteMaximoBnpl1 string `json:"limite_maximo_bnpl_1"`
	LimiteMaximoBnpl3 string `json:"limite_maximo_bnpl_3"`
	LimiteMaximoBnpl6 string `json:"limite_maximo_bnpl_6"`
	LimiteMaximoBnpl9 string `json:"limite_maximo_bnpl_9"`

	// Negociado is true when a human advisor override survived into the
	// resolved ladder (possibly clamped). The frontend uses it to label the
	// price as negotiated.
	Negociado         bool   `json:"negociado"`
	NegocioAplicaBnpl string `json:"negocio_aplica_bnpl"`

	Nid     *string `json:"nid"`
	Variant string  `json:"variant"`

	Direccion       string `json:"direccion"`
	AreaConstruida  string `json:"area_construida"`
	NumHabitaciones string `json:"num_habitaciones"`
	TipoInmueble    string `json:"tipo_inmueble"`
	Whatsapp        string `json:"whatsapp"`
}
