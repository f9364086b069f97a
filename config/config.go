package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type API struct {
	BaseURL   string        `yaml:"base_url"` // e.g. http://ergast.com
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type Server struct {
	ListenAddress string        `yaml:"listen_address"`
	StaticDir     string        `yaml:"static_dir"`
	CalendarFile  string        `yaml:"calendar_file"` // written inside StaticDir
	Template      string        `yaml:"template"`
	Greeting      string        `yaml:"greeting"`
	Regenerate    string        `yaml:"regenerate"` // cron spec, empty = startup only
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
}

type Config struct {
	API              API    `yaml:"api"`
	Season           string `yaml:"season"` // empty = current UTC year
	SkipInvalidRaces bool   `yaml:"skip_invalid_races"`
	Output           string `yaml:"output"`
	CalendarName     string `yaml:"calendar_name"`
	Server           Server `yaml:"server"`
}

func Default() Config {
	return Config{
		API: API{
			BaseURL:   "http://ergast.com",
			Timeout:   30 * time.Second,
			UserAgent: "f1calendar",
		},
		Output:       "icalendar.ics",
		CalendarName: "Formula 1",
		Server: Server{
			ListenAddress: ":8080",
			StaticDir:     "./static",
			CalendarFile:  "f1-races.ics",
			Template:      "./templates/index.html",
			Greeting:      "Lights out and away we go!",
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  10 * time.Second,
			IdleTimeout:   60 * time.Second,
		},
	}
}

// Load reads a YAML config on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must not be negative")
	}
	if c.Output == "" {
		return errors.New("output is required")
	}
	if c.Server.StaticDir == "" || c.Server.CalendarFile == "" {
		return errors.New("server.static_dir and server.calendar_file are required")
	}
	return nil
}
