package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Jaymon/DateParser/pkg/terrors"
	"github.com/Jaymon/DateParser/pkg/utils"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "DATEPARSER"
	EnvCFG    = "DATEPARSER_CONFIG"
	FileName  = "dateparser"
)

var DefaultPath = "~/.dateparser"

var configPath string

func ConfigPath() string {
	return configPath
}

func setConfigPath(path string) error {
	path, err := utils.NormalizePath(path)
	if err != nil {
		return err
	}
	configPath = path
	return nil
}

// arg wins over $DATEPARSER_CONFIG which wins over DefaultPath
func SelectConfigFile(arg string) error {
	var path string
	env := os.Getenv(EnvCFG)
	if arg != "" {
		path = arg
	} else if env != "" {
		path = env
	} else {
		path = DefaultPath
	}
	return setConfigPath(path)
}

func InitViper(arg string) error {
	err := SelectConfigFile(arg)
	if err != nil {
		return err
	}
	path := ConfigPath()
	viper.SetConfigType("toml")
	viper.SetConfigName(FileName)
	viper.AddConfigPath(path)
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	err = viper.ReadConfig(bytes.NewReader([]byte(DefaultConfig)))
	if err != nil {
		return fmt.Errorf("%w: failed parsing default configurations: %w", terrors.ErrParse, err)
	}
	err = viper.MergeInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("%w: %w", terrors.ErrConf, err)
		}
	}
	if errs := ValidateConfig(); len(errs) > 0 {
		return errors.Join(errs...)
	}

	err = os.MkdirAll(path, 0755)
	if err != nil {
		return err
	}
	err = viper.SafeWriteConfigAs(filepath.Join(path, FileName+".toml"))
	if _, ok := err.(viper.ConfigFileAlreadyExistsError); ok {
		return nil
	}
	return err
}
