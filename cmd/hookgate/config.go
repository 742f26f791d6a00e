package main

import "github.com/jinzhu/configor"

type TargetConfiguration struct {
	Name    string
	URL     string
	Channel string
}

type Configuration struct {
	APIPort   int `default:"5030"`
	QueueSize int `default:"64"`

	MaxTargets int `default:"16"`
	Targets    []TargetConfiguration

	// RedisAddr enables the Redis-backed receipt cache; leave empty to
	// keep receipts in process memory.
	RedisAddr string

	DedupeTTL      string `default:"5m"`
	CollapseWindow string `default:"2s"`
	SendTimeout    string `default:"10s"`

	DefaultUsername  string `default:"hookgate"`
	DefaultIconEmoji string `default:":incoming_envelope:"`
}

func loadConfiguration(path string) (*Configuration, error) {
	config := Configuration{}

	var err error
	if path == "" {
		err = configor.Load(&config)
	} else {
		err = configor.Load(&config, path)
	}
	if err != nil {
		return nil, err
	}

	return &config, nil
}
