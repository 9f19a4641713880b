package payment

type Method string

const (
	MethodCOD  Method = "cod"
	MethodCard Method = "card"
)

// CardDetails is what the client submits for tokenization. The raw number
// never leaves this process except toward the provider.
type CardDetails struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
	CVC      string `json:"cvc"`
	Name     string `json:"name"`
}

// Token is the provider-issued reference stored in place of card data.
type Token struct {
	ID       string `json:"id"`
	Last4    string `json:"last4"`
	Brand    string `json:"brand"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
}
