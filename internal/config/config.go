package config

import (
	"flag"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
)

/*
Address to listen on: RUN_ADDRESS or -a.
Database DSN: DATABASE_URI or -d.
Payment provider API: PAYMENT_PROVIDER_ADDRESS or -p (empty disables payment verification).
Cookie signing secret: SECRET or -s.
Admin session length in seconds: AUTH_COOKIE_EXPIRES or -e.
Pause between payment verification rounds: VERIFY_INTERVAL or -i.
Bootstrap admin account: ADMIN_LOGIN / ADMIN_PASSWORD.
*/

type ServerConfig struct {
	RunAddress             string        `env:"RUN_ADDRESS"`
	DatabaseDSN            string        `env:"DATABASE_URI"`
	PaymentProviderAddress string        `env:"PAYMENT_PROVIDER_ADDRESS"`
	SecretString           string        `env:"SECRET"`
	AuthCookieExpiresIn    int           `env:"AUTH_COOKIE_EXPIRES"`
	VerifyInterval         time.Duration `env:"VERIFY_INTERVAL"`
	AdminLogin             string        `env:"ADMIN_LOGIN"`
	AdminPassword          string        `env:"ADMIN_PASSWORD"`
	LogLevel               string        `env:"LOG_LEVEL" envDefault:"info"`

	Secret []byte
}

func NewConfig() (*ServerConfig, error) {
	return parse(os.Args[1:])
}

func parse(args []string) (*ServerConfig, error) {
	var params ServerConfig
	err := env.Parse(&params)
	if err != nil {
		return nil, err
	}

	var commandLineParams ServerConfig

	flags := flag.NewFlagSet("safetap", flag.ContinueOnError)
	flags.StringVar(&commandLineParams.RunAddress, "a", "localhost:8080", "Base address to listen on")
	flags.StringVar(&commandLineParams.DatabaseDSN, "d", "postgres://postgres@localhost:5432/safetap?sslmode=disable", "Database DSN")
	flags.StringVar(&commandLineParams.PaymentProviderAddress, "p", "", "Payment provider address")
	flags.StringVar(&commandLineParams.SecretString, "s", "change-me", "Secret used to sign admin sessions")
	flags.IntVar(&commandLineParams.AuthCookieExpiresIn, "e", 8*60*60, "Admin session length, seconds")
	flags.DurationVar(&commandLineParams.VerifyInterval, "i", 30*time.Second, "Pause between payment verification rounds")
	err = flags.Parse(args)
	if err != nil {
		return nil, err
	}

	if params.RunAddress == "" {
		params.RunAddress = commandLineParams.RunAddress
	}
	if params.DatabaseDSN == "" {
		params.DatabaseDSN = commandLineParams.DatabaseDSN
	}
	if params.PaymentProviderAddress == "" {
		params.PaymentProviderAddress = commandLineParams.PaymentProviderAddress
	}
	if params.SecretString == "" {
		params.SecretString = commandLineParams.SecretString
	}
	if params.AuthCookieExpiresIn == 0 {
		params.AuthCookieExpiresIn = commandLineParams.AuthCookieExpiresIn
	}
	if params.VerifyInterval == 0 {
		params.VerifyInterval = commandLineParams.VerifyInterval
	}
	params.Secret = []byte(params.SecretString)

	return &params, nil
}
