package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	API struct {
		BaseURL          string   `json:"base_url"`
		RequestTimeout   Duration `json:"request_timeout"`
		RetryMaxAttempts int      `json:"retry_max_attempts"`
		RetryBaseWait    Duration `json:"retry_base_wait"`
	} `json:"api,omitempty"`

	Crypto struct {
		KDFIterations uint32 `json:"kdf_iterations"`
	} `json:"crypto,omitempty"`

	Session struct {
		HeartbeatInterval    Duration `json:"heartbeat_interval"`
		ReconnectMaxAttempts int      `json:"reconnect_max_attempts"`
		ReconnectBaseWait    Duration `json:"reconnect_base_wait"`
	} `json:"session,omitempty"`

	Engine struct {
		ChallengeLifetime Duration `json:"challenge_lifetime"`
		LockoutWindow     Duration `json:"lockout_window"`
		LockoutThreshold  int      `json:"lockout_threshold"`
		MaxConcurrent     int64    `json:"max_concurrent"`
	} `json:"engine,omitempty"`

	Auth struct {
		RefreshThreshold Duration `json:"refresh_threshold"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		RefreshCheckInterval Duration `json:"refresh_check_interval"`
		PruneInterval        Duration `json:"prune_interval"`
		HistoryKeep          int      `json:"history_keep"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Adapter: Adapter{
			APIBaseURL:       jsonCfg.API.BaseURL,
			RequestTimeout:   time.Duration(jsonCfg.API.RequestTimeout),
			RetryMaxAttempts: jsonCfg.API.RetryMaxAttempts,
			RetryBaseWait:    time.Duration(jsonCfg.API.RetryBaseWait),
		},
		Crypto: Crypto{
			KDFIterations: jsonCfg.Crypto.KDFIterations,
		},
		Session: Session{
			HeartbeatInterval:    time.Duration(jsonCfg.Session.HeartbeatInterval),
			ReconnectMaxAttempts: jsonCfg.Session.ReconnectMaxAttempts,
			ReconnectBaseWait:    time.Duration(jsonCfg.Session.ReconnectBaseWait),
		},
		Engine: Engine{
			ChallengeLifetime: time.Duration(jsonCfg.Engine.ChallengeLifetime),
			LockoutWindow:     time.Duration(jsonCfg.Engine.LockoutWindow),
			LockoutThreshold:  jsonCfg.Engine.LockoutThreshold,
			MaxConcurrent:     jsonCfg.Engine.MaxConcurrent,
		},
		Auth: Auth{
			RefreshThreshold: time.Duration(jsonCfg.Auth.RefreshThreshold),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Workers: Workers{
			RefreshCheckInterval: time.Duration(jsonCfg.Workers.RefreshCheckInterval),
			PruneInterval:        time.Duration(jsonCfg.Workers.PruneInterval),
			HistoryKeep:          jsonCfg.Workers.HistoryKeep,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
