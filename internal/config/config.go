package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Dev           bool          `envconfig:"DEV" default:"false"`
	PageURL       string        `envconfig:"PAGE_URL" default:"https://www.olg-hamm.nrw.de/aufgaben/geschaeftsverteilung/verwaltung/dez05/10_sammlung/aktuelle_informationen/index.php"`
	CheckInterval time.Duration `envconfig:"CHECK_INTERVAL" default:"15m"`
	HashFile      string        `envconfig:"HASH_FILE" default:"data/hashes.txt"`

	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `envconfig:"TELEGRAM_CHAT_ID"`

	BrevoAPIKey string `envconfig:"BREVO_API_KEY"`
	FromEmail   string `envconfig:"FROM_EMAIL"`
	FromName    string `envconfig:"FROM_NAME" default:"OLG Watcher"`
	MailTo      string `envconfig:"MAIL_TO"`

	GoogleCredentialsPath string `envconfig:"GOOGLE_CREDENTIALS_PATH"`
	GoogleCalendarID      string `envconfig:"GOOGLE_CALENDAR_ID"`

	// SSMParameterPrefix, when set, sources the Telegram token and Brevo API
	// key from SSM parameters under that prefix instead of plain env vars.
	SSMParameterPrefix string `envconfig:"SSM_PARAMETER_PREFIX"`
}

func New(ctx context.Context) (*Config, error) {
	res := &Config{}

	err := envconfig.Process("", res)
	if err != nil {
		return nil, fmt.Errorf("envconfig process: %w", err)
	}

	if res.SSMParameterPrefix == "" {
		return res, nil
	}
	if err := res.loadSSMSecrets(ctx); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *Config) loadSSMSecrets(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	ssmClient := ssm.NewFromConfig(cfg)

	token, err := getSSMParameter(ctx, ssmClient, c.SSMParameterPrefix+"/telegram-token")
	if err != nil {
		return err
	}
	if token != "" {
		c.TelegramBotToken = token
	}

	apiKey, err := getSSMParameter(ctx, ssmClient, c.SSMParameterPrefix+"/brevo-api-key")
	if err != nil {
		return err
	}
	if apiKey != "" {
		c.BrevoAPIKey = apiKey
	}

	return nil
}

// getSSMParameter fetches one decrypted parameter. A missing parameter is
// not an error; the env value (possibly empty) stays in effect and the
// corresponding channel simply stays disabled.
func getSSMParameter(ctx context.Context, client *ssm.Client, name string) (string, error) {
	param, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("get SSM parameter %s: %w", name, err)
	}
	if param.Parameter == nil || param.Parameter.Value == nil {
		return "", nil
	}

	return *param.Parameter.Value, nil
}
