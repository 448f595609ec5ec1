package configs

import (
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var MidtransClient snap.Client

// MidtransEnabled reports whether payment gateway keys were provided. Without
// them the ledger falls back to plain UPI deep links.
func MidtransEnabled() bool {
	return LoadENV.MIDTRANS_SERVER_KEY != ""
}

func InitMidtransClient() {
	if !MidtransEnabled() {
		log.Println("Midtrans keys not configured; payment links will use UPI only.")
		return
	}
	MidtransClient.New(LoadENV.MIDTRANS_SERVER_KEY, midtrans.Sandbox)
	midtrans.ClientKey = LoadENV.MIDTRANS_CLIENT_KEY
	midtrans.ServerKey = LoadENV.MIDTRANS_SERVER_KEY
	midtrans.Environment = midtrans.Sandbox
	log.Println("✅ Midtrans Snap Client initialized.")
}

func GetMidtransSnapClient() snap.Client {
	return MidtransClient
}
