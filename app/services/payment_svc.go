package services

import (
	"fmt"
	"net/url"
	"time"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"

	"github.com/hatim/makmanager/app/configs"
	"github.com/hatim/makmanager/app/models"
)

// PaymentLink carries the settle-balance options shown to a dealer: a UPI
// deep link always, plus a gateway checkout URL when Midtrans is configured.
type PaymentLink struct {
	Amount     string `json:"amount"`
	UPILink    string `json:"upi_link,omitempty"`
	GatewayURL string `json:"gateway_url,omitempty"`
}

type PaymentService struct {
	payeeVPA  string
	payeeName string
}

func NewPaymentService(payeeVPA, payeeName string) *PaymentService {
	return &PaymentService{payeeVPA: payeeVPA, payeeName: payeeName}
}

// UPILink builds a upi://pay deep link for the given amount. Link
// construction only; confirmation stays manual via RecordPayment.
func (s *PaymentService) UPILink(amount decimal.Decimal, note string) string {
	if s.payeeVPA == "" {
		return ""
	}
	params := url.Values{}
	params.Set("pa", s.payeeVPA)
	params.Set("pn", s.payeeName)
	params.Set("am", amount.StringFixed(2))
	params.Set("cu", "INR")
	if note != "" {
		params.Set("tn", note)
	}
	return "upi://pay?" + params.Encode()
}

// SettlementLink builds the payment options for a dealer's outstanding
// balance.
func (s *PaymentService) SettlementLink(dealer *models.User) (*PaymentLink, error) {
	if dealer.CurrentBalance.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	link := &PaymentLink{
		Amount:  dealer.CurrentBalance.StringFixed(2),
		UPILink: s.UPILink(dealer.CurrentBalance, fmt.Sprintf("Ledger settlement %s", dealer.Name)),
	}

	if configs.MidtransEnabled() {
		snapClient := configs.GetMidtransSnapClient()
		snapReq := &snap.Request{
			TransactionDetails: midtrans.TransactionDetails{
				OrderID:  fmt.Sprintf("LEDGER-%s-%d", shortID(dealer.ID), time.Now().Unix()),
				GrossAmt: dealer.CurrentBalance.Round(0).IntPart(),
			},
			CustomerDetail: &midtrans.CustomerDetails{
				FName: dealer.Name,
				Phone: dealer.Phone,
			},
			EnabledPayments: snap.AllSnapPaymentType,
		}
		snapResp, err := snapClient.CreateTransaction(snapReq)
		if err != nil {
			return nil, fmt.Errorf("failed to initiate gateway transaction: %w", err)
		}
		if snapResp != nil {
			link.GatewayURL = snapResp.RedirectURL
		}
	}

	return link, nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
