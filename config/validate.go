package config

import (
	"fmt"
	"slices"

	"github.com/Jaymon/DateParser/pkg/terrors"

	"github.com/spf13/viper"
)

const maxTzOffset = 14 * 60 * 60

var Modes = []string{"text", "field"}

func ValidateConfig() []error {
	var errs []error
	// logging.*
	{
		for _, key := range []string{"logging.console-level", "logging.file-level"} {
			if err := validateLogLevel(key); err != nil {
				errs = append(errs, err)
			}
		}
	}

	// parser.*
	{
		if err := validateTypeInt("parser.tz-offset"); err == nil {
			val := viper.GetInt("parser.tz-offset")
			if val < -maxTzOffset || val > maxTzOffset {
				errs = append(errs, fmt.Errorf("%w: %w: value of 'parser.tz-offset' must be between '%d' and '%d' not '%d'", terrors.ErrConf, terrors.ErrValue, -maxTzOffset, maxTzOffset, val))
			}
		} else {
			errs = append(errs, err)
		}
		if err := validateTypeString("parser.mode"); err == nil {
			if mode := viper.GetString("parser.mode"); !slices.Contains(Modes, mode) {
				errs = append(errs, fmt.Errorf("%w: %w: value of 'parser.mode' must be one of %v not '%s'", terrors.ErrConf, terrors.ErrValue, Modes, mode))
			}
		} else {
			errs = append(errs, err)
		}
	}

	// output.*
	{
		if err := validateTypeBool("output.describe"); err != nil {
			errs = append(errs, err)
		}
		if err := validateTypeInt("output.recur-count"); err == nil {
			val := viper.GetInt("output.recur-count")
			if val < 1 || val > 100 {
				errs = append(errs, fmt.Errorf("%w: %w: value of 'output.recur-count' must be between 1 and 100 not '%d'", terrors.ErrConf, terrors.ErrValue, val))
			}
		} else {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateLogLevel(key string) error {
	if err := validateTypeInt(key); err != nil {
		return err
	}
	val := viper.GetInt(key)
	if val < -1 || val > 5 {
		return fmt.Errorf("%w: %w: config key '%s' must be between '-1' and '5' and not '%d'", terrors.ErrConf, terrors.ErrValue, key, val)
	}
	return nil
}

func validateTypeInt(key string) error {
	raw := viper.Get(key)
	switch raw.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return nil
	default:
		return fmt.Errorf("%w: %w: config key '%s' must be of an int type not '%T'", terrors.ErrConf, terrors.ErrType, key, raw)
	}
}

func validateTypeBool(key string) error {
	if _, ok := viper.Get(key).(bool); !ok {
		return fmt.Errorf("%w: %w: config key '%s' must be of type bool not '%T'", terrors.ErrConf, terrors.ErrType, key, viper.Get(key))
	}
	return nil
}

func validateTypeString(key string) error {
	raw := viper.Get(key)
	switch raw.(type) {
	case string:
		return nil
	default:
		return fmt.Errorf("%w: %w: config key '%s' must be of type string not '%T'", terrors.ErrConf, terrors.ErrType, key, raw)
	}
}
