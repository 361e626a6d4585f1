package configure

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func checkErr(err error) {
	if err != nil {
		zap.S().Fatalw("config",
			"error", err,
		)
	}
}

func New() *Config {
	initLogging("info")

	config := viper.New()

	// Default config
	b, _ := json.Marshal(Default())
	tmp := viper.New()
	defaultConfig := bytes.NewReader(b)

	tmp.SetConfigType("json")
	checkErr(tmp.ReadConfig(defaultConfig))
	checkErr(config.MergeConfigMap(tmp.AllSettings()))

	pflag.String("config", "config.yaml", "Config file location")
	pflag.Bool("noheader", false, "Disable the startup header")

	pflag.Parse()
	checkErr(config.BindPFlags(pflag.CommandLine))

	// File
	config.SetConfigFile(config.GetString("config"))
	config.AddConfigPath(".")

	if err := config.ReadInConfig(); err == nil {
		checkErr(config.MergeInConfig())
	}

	bindEnvs(config, Config{})

	// Environment
	config.AutomaticEnv()
	config.SetEnvPrefix("TRACKER")
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AllowEmptyEnv(true)

	c := &Config{}
	checkErr(config.Unmarshal(&c))

	initLogging(c.Level)

	return c
}

// Default returns the configuration used when neither the file nor the environment sets a value.
func Default() Config {
	c := Config{
		Level:      "info",
		ConfigFile: "config.yaml",
	}

	c.Mongo.URI = "mongodb://localhost:27017"
	c.Mongo.DB = "tracker"

	c.Nats.Subject = "tracker.presence"

	c.Presence.APIURL = "https://api.vk.com/method"
	c.Presence.Version = "5.131"
	c.Presence.BatchSize = 1000
	c.Presence.MinInterval = time.Second
	c.Presence.WaitTimeout = time.Second * 30
	c.Presence.RequestTimeout = time.Second * 15

	c.Poller.Enabled = true
	c.Poller.Interval = time.Minute

	c.Aggregation.HistoryEpoch = "2020-01-01T00:00:00Z"
	c.Aggregation.Workers = 8
	c.Aggregation.OnlineLookback = time.Hour * 24

	c.Http.Port = 3000

	c.Health.Bind = "0.0.0.0:9200"
	c.Monitoring.Bind = "0.0.0.0:9100"
	c.PProf.Bind = "127.0.0.1:9300"

	return c
}

func bindEnvs(config *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)

	for i := 0; i < ift.NumField(); i++ {
		v := ifv.Field(i)
		t := ift.Field(i)

		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}

		switch v.Kind() {
		case reflect.Struct:
			bindEnvs(config, v.Interface(), append(parts, tv)...)
		default:
			_ = config.BindEnv(strings.Join(append(parts, tv), "."))
		}
	}
}

type Config struct {
	Level      string `mapstructure:"level" json:"level"`
	ConfigFile string `mapstructure:"config" json:"config"`
	NoHeader   bool   `mapstructure:"noheader" json:"noheader"`

	K8S struct {
		NodeName string `mapstructure:"node_name" json:"node_name"`
		PodName  string `mapstructure:"pod_name" json:"pod_name"`
	} `mapstructure:"k8s" json:"k8s"`

	Mongo struct {
		URI    string `mapstructure:"uri" json:"uri"`
		DB     string `mapstructure:"db" json:"db"`
		Direct bool   `mapstructure:"direct" json:"direct"`
	} `mapstructure:"mongo" json:"mongo"`

	Nats struct {
		URL     string `mapstructure:"url" json:"url"`
		Subject string `mapstructure:"subject" json:"subject"`
	} `mapstructure:"nats" json:"nats"`

	Presence struct {
		APIURL         string        `mapstructure:"api_url" json:"api_url"`
		AccessToken    string        `mapstructure:"access_token" json:"access_token"`
		Version        string        `mapstructure:"version" json:"version"`
		BatchSize      int           `mapstructure:"batch_size" json:"batch_size"`
		MinInterval    time.Duration `mapstructure:"min_interval" json:"min_interval"`
		WaitTimeout    time.Duration `mapstructure:"wait_timeout" json:"wait_timeout"`
		RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout"`
	} `mapstructure:"presence" json:"presence"`

	Poller struct {
		Enabled  bool          `mapstructure:"enabled" json:"enabled"`
		Interval time.Duration `mapstructure:"interval" json:"interval"`
	} `mapstructure:"poller" json:"poller"`

	Aggregation struct {
		HistoryEpoch   string        `mapstructure:"history_epoch" json:"history_epoch"`
		Workers        int           `mapstructure:"workers" json:"workers"`
		OnlineLookback time.Duration `mapstructure:"online_lookback" json:"online_lookback"`
	} `mapstructure:"aggregation" json:"aggregation"`

	Http struct {
		Addr string `mapstructure:"addr" json:"addr"`
		Port int    `mapstructure:"port" json:"port"`
	} `mapstructure:"http" json:"http"`

	Health struct {
		Enabled bool   `mapstructure:"enabled" json:"enabled"`
		Bind    string `mapstructure:"bind" json:"bind"`
	} `mapstructure:"health" json:"health"`

	Monitoring struct {
		Enabled bool   `mapstructure:"enabled" json:"enabled"`
		Bind    string `mapstructure:"bind" json:"bind"`
		Labels  Labels `mapstructure:"labels" json:"labels"`
	} `mapstructure:"monitoring" json:"monitoring"`

	PProf struct {
		Enabled bool   `mapstructure:"enabled" json:"enabled"`
		Bind    string `mapstructure:"bind" json:"bind"`
	} `mapstructure:"pprof" json:"pprof"`
}

// HistoryEpoch parses the boundary before which no log data is trusted.
func (c *Config) HistoryEpoch() time.Time {
	t, err := time.Parse(time.RFC3339, c.Aggregation.HistoryEpoch)
	if err != nil {
		zap.S().Warnw("invalid history epoch, using unix epoch",
			"value", c.Aggregation.HistoryEpoch,
			"error", err,
		)

		return time.Unix(0, 0).UTC()
	}

	return t.UTC()
}

type Labels []struct {
	Key   string `mapstructure:"key" json:"key"`
	Value string `mapstructure:"value" json:"value"`
}

func (l Labels) ToPrometheus() prometheus.Labels {
	mp := prometheus.Labels{}

	for _, v := range l {
		mp[v.Key] = v.Value
	}

	return mp
}
