package config

import (
	"fmt"
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
	Host        string      `koanf:"host"`
	Database    Database    `koanf:"db"`
	Clockify    Clockify    `koanf:"clockify"`
	BambooHR    BambooHR    `koanf:"bamboohr"`
	SurePayroll SurePayroll `koanf:"surepayroll"`
	Zoho        Zoho        `koanf:"zoho"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Clockify holds credentials for the time-tracking adapter.
type Clockify struct {
	ApiKey      string `koanf:"apikey"`
	WorkspaceId string `koanf:"workspaceid"`
}

// Validate checks that all fields required to talk to Clockify are present.
func (c Clockify) Validate() error {
	if c.ApiKey == "" {
		return fmt.Errorf("clockify: apikey is required")
	}
	if c.WorkspaceId == "" {
		return fmt.Errorf("clockify: workspaceid is required")
	}
	return nil
}

// BambooHR holds credentials for the employee/compensation import adapter.
type BambooHR struct {
	ApiKey    string `koanf:"apikey"`
	Subdomain string `koanf:"subdomain"`
}

func (c BambooHR) Validate() error {
	if c.ApiKey == "" {
		return fmt.Errorf("bamboohr: apikey is required")
	}
	if c.Subdomain == "" {
		return fmt.Errorf("bamboohr: subdomain is required")
	}
	return nil
}

// SurePayroll holds credentials for the payroll rate import adapter.
type SurePayroll struct {
	ApiKey    string `koanf:"apikey"`
	AccountId string `koanf:"accountid"`
}

func (c SurePayroll) Validate() error {
	if c.ApiKey == "" {
		return fmt.Errorf("surepayroll: apikey is required")
	}
	if c.AccountId == "" {
		return fmt.Errorf("surepayroll: accountid is required")
	}
	return nil
}

// Zoho holds OAuth2 credentials for the revenue source (Zoho Books).
type Zoho struct {
	ClientId       string `koanf:"clientid"`
	ClientSecret   string `koanf:"clientsecret"`
	RefreshToken   string `koanf:"refreshtoken"`
	OrganizationId string `koanf:"organizationid"`
}

func (c Zoho) Validate() error {
	if c.ClientId == "" || c.ClientSecret == "" {
		return fmt.Errorf("zoho: clientid and clientsecret are required")
	}
	if c.RefreshToken == "" {
		return fmt.Errorf("zoho: refreshtoken is required")
	}
	return nil
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "marginview",
			Pass:   "",
			Name:   "marginview",
			Schema: "marginview",
		},
	}, "koanf"), nil)
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
		Prefix: "MARGINVIEW_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "MARGINVIEW_")), "_", ".")
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
