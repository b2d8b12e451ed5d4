package config

import (
	"context"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// TelegramConfig holds the bot credentials for alert delivery.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// Resolve returns the credentials to use, falling back to SSM Parameter
// Store in prod when the environment left them unset.
func (cfg *TelegramConfig) Resolve(env string) (token, chatID string) {
	token, chatID = cfg.BotToken, cfg.ChatID

	if env == "prod" {
		if token == "" {
			token = getParameterStoreValue("CRUISEWATCH_TELEGRAM_BOT_TOKEN", true)
		}
		if chatID == "" {
			chatID = getParameterStoreValue("CRUISEWATCH_TELEGRAM_CHAT_ID", false)
		}
	}

	return token, chatID
}

func getParameterStoreValue(parameterName string, decrypt bool) string {
	baseCtx := context.Background()
	ctxWithTimeout, cancel := context.WithTimeout(baseCtx, 5*time.Second)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctxWithTimeout)
	if err != nil {
		return ""
	}

	client := ssm.NewFromConfig(cfg)

	input := &ssm.GetParameterInput{
		Name:           &parameterName,
		WithDecryption: &decrypt,
	}

	result, err := client.GetParameter(ctxWithTimeout, input)
	if err != nil {
		return ""
	}

	if result.Parameter.Value == nil {
		return ""
	}

	return *result.Parameter.Value
}
