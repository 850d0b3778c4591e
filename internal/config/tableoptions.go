package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// TableOptions holds the option lists backing the default column schema.
// Tax rates are the selectable GST slabs, units the "Per" dropdown values.
type TableOptions struct {
	TaxRates []float64 `mapstructure:"taxRates"`
	Units    []string  `mapstructure:"units"`
}

func DefaultTableOptions() TableOptions {
	return TableOptions{
		TaxRates: []float64{0, 5, 12, 18, 28},
		Units:    []string{"Units", "PCS", "KG", "MTR", "LTR", "BOX", "SET"},
	}
}

// TableOptionsHolder serves the current option lists and hot-reloads them
// when the backing file changes.
type TableOptionsHolder struct {
	current atomic.Value // holds TableOptions
}

func NewTableOptionsHolder() (*TableOptionsHolder, error) {
	v := viper.New()

	v.SetConfigName("tableoptions")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/gstdesk/config") // Volume-mounted config
	v.AddConfigPath("/etc/gstdesk")            // System config
	v.AddConfigPath(".")                       // Current directory (dev mode)

	v.SetEnvPrefix("GSTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultTableOptions()
		v.SetDefault("table.taxRates", defaults.TaxRates)
		v.SetDefault("table.units", defaults.Units)
	}

	var opts TableOptions
	if err := v.UnmarshalKey("table", &opts); err != nil {
		return nil, err
	}
	if err := validateTableOptions(opts); err != nil {
		return nil, err
	}

	holder := &TableOptionsHolder{}
	holder.current.Store(opts)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated TableOptions
		if err := v.UnmarshalKey("table", &updated); err != nil {
			log.Printf("[table-options] reload failed: %v", err)
			return
		}
		if err := validateTableOptions(updated); err != nil {
			log.Printf("[table-options] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[table-options] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *TableOptionsHolder) Get() TableOptions {
	return h.current.Load().(TableOptions)
}

func validateTableOptions(opts TableOptions) error {
	if len(opts.TaxRates) == 0 {
		return errors.New("table.taxRates cannot be empty")
	}
	if len(opts.Units) == 0 {
		return errors.New("table.units cannot be empty")
	}
	for _, rate := range opts.TaxRates {
		if rate < 0 || rate > 100 {
			return errors.New("table.taxRates entries must be within [0, 100]")
		}
	}
	return nil
}
