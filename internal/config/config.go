package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Server   Server   `koanf:"server"`
	Database Database `koanf:"db"`
	Payroll  Payroll  `koanf:"payroll"`
}

type Server struct {
	Port int `koanf:"port"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Payroll holds the flat tax table used for freelancer payments.
// TaxRates maps a nationality to its rate; every other nationality pays DefaultTaxRate.
// Nationality keys are matched case-insensitively since environment keys arrive lowercased.
// A nil DefaultTaxRate keeps the built-in default, an explicit 0 is honored.
type Payroll struct {
	TaxRates       map[string]float64 `koanf:"taxrates"`
	DefaultTaxRate *float64           `koanf:"defaulttaxrate"`
}

func Defaults() Application {
	return Application{
		Server: Server{
			Port: 8181,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "bizcalc",
			Pass:   "",
			Name:   "bizcalc",
			Schema: "bizcalc",
		},
		Payroll: Payroll{
			TaxRates: map[string]float64{
				"Vietnamese": 0.10,
			},
			DefaultTaxRate: floatPtr(0.20),
		},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "BIZCALC_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "BIZCALC_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
