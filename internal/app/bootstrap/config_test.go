package bootstrap

import (
	"testing"

	"go.uber.org/zap"
)

func TestValidateConfig(t *testing.T) {
	log := zap.NewNop()

	tests := []struct {
		name    string
		cfg     AppConfig
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     AppConfig{MongoURI: "mongodb://localhost:27017", DefaultCurrency: "egp"},
			wantErr: false,
		},
		{
			name:    "bad uri scheme",
			cfg:     AppConfig{MongoURI: "http://localhost:27017", DefaultCurrency: "egp"},
			wantErr: true,
		},
		{
			name:    "missing currency",
			cfg:     AppConfig{MongoURI: "mongodb://localhost:27017"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(nil, tt.cfg, log)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
