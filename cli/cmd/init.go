package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dataindex/index"
	"github.com/ardnew/dataindex/log"
	"github.com/ardnew/dataindex/profile"
	"github.com/ardnew/dataindex/value"
)

// ignoreFlags are flag name prefixes never written to the configuration
// file.
var ignoreFlags = []string{"help", "source", profile.Tag}

// Init writes a configuration file holding the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	idx, err := configIndex(ktx)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}
	defer file.Close()

	if err := idx.FormatMarkup(ctx, file); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("entries", idx.Len()-1),
	)

	return nil
}

// configIndex builds an index with one entry under the config container per
// flag that has a value.
func configIndex(ktx *kong.Context) (*index.Index, error) {
	idx := index.New()

	if _, err := idx.AddContainer(ConfigIdentifier); err != nil {
		return nil, err
	}

	for _, flag := range ktx.Flags() {
		if flag.Hidden || slices.ContainsFunc(ignoreFlags, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		v := flagValue(ktx.FlagValue(flag))
		if v == nil {
			continue
		}

		if _, err := idx.Insert(index.Join(ConfigIdentifier, flag.Name), v); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

// flagValue converts a parsed flag value to an index value, or nil if the
// flag is unset or has no markup equivalent.
func flagValue(val any) value.Value {
	switch v := val.(type) {
	case nil:
		return nil

	case bool:
		return value.NewString(strconv.FormatBool(v))

	case string:
		if v == "" {
			return nil
		}

		return value.NewString(v)

	case int:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return value.NewString(strconv.Itoa(v))
		}

		return value.NewInt(int32(v))

	case float64:
		return value.NewFloat(v)

	case []string:
		if len(v) == 0 {
			return nil
		}

		return value.NewString(strings.Join(v, ","))

	case []float64:
		if len(v) == 0 {
			return nil
		}

		return value.NewVecFloat(v...)

	default:
		s := fmt.Sprint(v)
		if s == "" {
			return nil
		}

		return value.NewString(s)
	}
}
