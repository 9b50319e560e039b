package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

type Logger struct {
	Level string `yaml:"level"`
}

type Global struct {
	Logger Logger `yaml:"logger"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// ConnString renders the database settings as a pgx connection URL.
func (d Database) ConnString() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Database,
		RawQuery: url.Values{"sslmode": []string{sslmode}}.Encode(),
	}
	return u.String()
}

type LocalSource struct {
	Path string `yaml:"path"`
}

type S3Source struct {
	Bucket         string `yaml:"bucket"`
	Region         string `yaml:"region"`
	Prefix         string `yaml:"prefix"`
	Endpoint       string `yaml:"endpoint"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

type Source struct {
	Type        string      `yaml:"type"`
	LocalConfig LocalSource `yaml:"local"`
	S3Config    S3Source    `yaml:"s3"`
}

type Curator struct {
	Global     Global   `yaml:"global"`
	Database   Database `yaml:"db"`
	TargetPath string   `yaml:"target_path"`
	Source     *Source  `yaml:"source"`
}

// Validate rejects configs the pipeline cannot start from. Failures here
// are fatal and happen before any database connection is attempted.
func (c *Curator) Validate() error {
	if c.Database.Host == "" {
		return errors.New("config: db.host is required")
	}
	if c.Database.Database == "" {
		return errors.New("config: db.database is required")
	}
	if c.Database.User == "" {
		return errors.New("config: db.user is required")
	}

	if c.Source == nil {
		if c.TargetPath == "" {
			return errors.New("config: either target_path or a source is required")
		}
		return nil
	}

	switch c.Source.Type {
	case "local":
		if c.Source.LocalConfig.Path == "" {
			return errors.New("config: source.local.path is required")
		}
	case "s3":
		if c.Source.S3Config.Bucket == "" {
			return errors.New("config: source.s3.bucket is required")
		}
	default:
		return fmt.Errorf("config: unknown source type: %q", c.Source.Type)
	}

	return nil
}

func NewCuratorFromFile(fpath string) (*Curator, error) {
	bs, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}

	curator := Curator{
		Database: Database{
			Port: 5432,
		},
	}
	if err := yaml.Unmarshal(bs, &curator); err != nil {
		return nil, err
	}

	if err := curator.Validate(); err != nil {
		return nil, err
	}

	return &curator, nil
}
