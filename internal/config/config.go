package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/calebomondi/irec-smartcontract/internal/log"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Env       string
	Network   string
	Index     string
	Debug     bool
	LogPath   string
	SentryDsn string

	ApiPort    string
	HealthPort string

	AdminAddress       string
	MarketplaceAddress string

	CertificateId uint64
	TotalSupply   uint64
	ReserveAmount uint64

	UnitToken    string
	PaymentToken string

	Ledger        LedgerConfig
	ElasticSearch ElasticSearchConfig
	Aws           AwsConfig
}

type AwsConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	QueueUrl  string
}

type LedgerConfig struct {
	Backend string
	Url     string
	Debug   bool
	Timeout int
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
}

func Init(service string) {
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env, using environment")
	}

	initLogger(service)
}

func initLogger(service string) {
	log.NewLogger(fmt.Sprintf("%s/%s.log", Get().LogPath, service), Get().Debug, Get().SentryDsn)
}

func Get() *Config {
	return &Config{
		Env:                getString("ENV", ""),
		Network:            getString("NETWORK", "mainnet"),
		Index:              getString("INDEX_NAME", "irec"),
		Debug:              getBool("DEBUG", false),
		LogPath:            getString("LOG_PATH", "./var/log"),
		SentryDsn:          getString("SENTRY_DSN", ""),
		ApiPort:            getString("API_PORT", "8080"),
		HealthPort:         getString("HEALTH_PORT", "8090"),
		AdminAddress:       getString("ADMIN_ADDRESS", ""),
		MarketplaceAddress: getString("MARKETPLACE_ADDRESS", ""),
		CertificateId:      getUint64("CERTIFICATE_ID", 1),
		TotalSupply:        getUint64("TOTAL_SUPPLY", 0),
		ReserveAmount:      getUint64("RESERVE_AMOUNT", 0),
		UnitToken:          getString("UNIT_TOKEN", ""),
		PaymentToken:       getString("PAYMENT_TOKEN", ""),
		Aws: AwsConfig{
			AccessKey: getString("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getString("AWS_SECRET_KEY_ID", ""),
			Region:    getString("AWS_REGION", ""),
			QueueUrl:  getString("AWS_QUEUE_URL", ""),
		},
		Ledger: LedgerConfig{
			Backend: getString("LEDGER_BACKEND", "rpc"),
			Url:     getString("LEDGER_URL", ""),
			Timeout: getInt("LEDGER_TIMEOUT", 30),
			Debug:   getBool("LEDGER_DEBUG", false),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "./data/mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, _, err := big.ParseFloat(valStr, 10, 0, big.ToNearestEven)
	if err != nil {
		return defaultValue
	}

	intVal, _ := val.Int64()
	return int(intVal)
}

func getUint64(key string, defaultValue uint) uint64 {
	val := getInt(key, int(defaultValue))
	if val < 0 {
		return uint64(defaultValue)
	}

	return uint64(val)
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
