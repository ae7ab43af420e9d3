package dto

// PageResponse eco de la paginación usada en un listado.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse respuesta de error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InsufficientStockResponse error de stock insuficiente con la cantidad
// solicitada y la disponible, para que el cliente pueda corregir la orden.
type InsufficientStockResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}
