package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// retrieveCredentials prefere DB_USERNAME/DB_PASSWORD e só consulta o
// Secrets Manager quando eles não estão definidos.
func retrieveCredentials(ctx context.Context, cfg config.Config) (string, string, error) {
	if cfg.DBUsername != "" && cfg.DBPassword != "" {
		return cfg.DBUsername, cfg.DBPassword, nil
	}
	if cfg.DBSecretID == "" {
		return "", "", errors.New("defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", "", err
	}
	secrets := secretsmanager.NewFromConfig(awsCfg)
	result, err := secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(cfg.DBSecretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", err
	}
	return parseCredentials(aws.ToString(result.SecretString))
}

func parseCredentials(secretString string) (string, string, error) {
	var secret Credentials
	if err := json.Unmarshal([]byte(secretString), &secret); err != nil {
		return "", "", err
	}
	if secret.Username == "" {
		return "", "", errors.New("segredo sem username")
	}
	return secret.Username, secret.Password, nil
}
