package transfer

type CreateBillRequest struct {
	UserID         int64   `json:"user_id"`
	PlanID         int64   `json:"plan_id"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	Description    string  `json:"description"`
	CustomerEmail  string  `json:"customer_email"`
	CustomerName   string  `json:"customer_name"`
	IdempotencyKey string  `json:"idempotency_key"`
}

type BillplzBillRequest struct {
	CollectionID    string `json:"collection_id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Amount          int64  `json:"amount"`
	Description     string `json:"description"`
	CallbackURL     string `json:"callback_url"`
	RedirectURL     string `json:"redirect_url"`
	Reference1      string `json:"reference_1"`
	Reference1Label string `json:"reference_1_label"`
	Reference2      string `json:"reference_2"`
	Reference2Label string `json:"reference_2_label"`
}

type BillplzBillResponse struct {
	ID           string `json:"id"`
	CollectionID string `json:"collection_id"`
	Paid         bool   `json:"paid"`
	State        string `json:"state"`
	Amount       int64  `json:"amount"`
	PaidAmount   int64  `json:"paid_amount"`
	DueAt        string `json:"due_at"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	Description  string `json:"description"`
	CallbackURL  string `json:"callback_url"`
	RedirectURL  string `json:"redirect_url"`
	Reference1   string `json:"reference_1"`
	Reference2   string `json:"reference_2"`
}

type BillplzCallback struct {
	ID                string `form:"id" json:"id"`
	CollectionID      string `form:"collection_id" json:"collection_id"`
	Paid              string `form:"paid" json:"paid"`
	State             string `form:"state" json:"state"`
	Amount            string `form:"amount" json:"amount"`
	PaidAmount        string `form:"paid_amount" json:"paid_amount"`
	DueAt             string `form:"due_at" json:"due_at"`
	Email             string `form:"email" json:"email"`
	Mobile            string `form:"mobile" json:"mobile"`
	Name              string `form:"name" json:"name"`
	URL               string `form:"url" json:"url"`
	PaidAt            string `form:"paid_at" json:"paid_at"`
	TransactionID     string `form:"transaction_id" json:"transaction_id"`
	TransactionStatus string `form:"transaction_status" json:"transaction_status"`
	XSignature        string `form:"x_signature" json:"x_signature"`
}

type CheckoutSession struct {
	BillID     string `json:"bill_id"`
	PaymentURL string `json:"payment_url"`
}
