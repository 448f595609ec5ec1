package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type ENV struct {
	DBHost              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBPort              string
	Port                string
	AppAuthKey          string
	AppEncKey           string
	CSRFKey             string
	BalanceTolerance    decimal.Decimal
	UPIPayeeVPA         string
	UPIPayeeName        string
	MIDTRANS_SERVER_KEY string
	MIDTRANS_CLIENT_KEY string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:              os.Getenv("DB_HOST"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBPort:              os.Getenv("DB_PORT"),
		Port:                os.Getenv("APP_PORT"),
		AppAuthKey:          os.Getenv("APP_AUTH_KEY"),
		AppEncKey:           os.Getenv("APP_ENC_KEY"),
		CSRFKey:             os.Getenv("APP_CSRF_KEY"),
		BalanceTolerance:    loadBalanceTolerance(),
		UPIPayeeVPA:         os.Getenv("UPI_PAYEE_VPA"),
		UPIPayeeName:        os.Getenv("UPI_PAYEE_NAME"),
		MIDTRANS_SERVER_KEY: os.Getenv("MIDTRANS_SERVER_KEY"),
		MIDTRANS_CLIENT_KEY: os.Getenv("MIDTRANS_CLIENT_KEY"),
	}

}

// Dealers with outstanding balance above this threshold are blocked from
// adding cart items. A small buffer so rounding paise never lock an account.
func loadBalanceTolerance() decimal.Decimal {
	raw := os.Getenv("BALANCE_TOLERANCE")
	if raw == "" {
		return decimal.NewFromInt(10)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Invalid BALANCE_TOLERANCE %q, using default 10", raw)
		return decimal.NewFromInt(10)
	}
	return decimal.NewFromFloat(value)
}

var LoadENV = LoadEnv()
