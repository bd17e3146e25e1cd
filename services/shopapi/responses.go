package shopapi

// Response envelopes: every response carries success, failures carry only a
// message (see myhttp.ErrorResponse).

type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type OrderPlacedResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	OrderUID string `json:"orderId"`
}
