package cli

import (
	"VoiceBot/internal/dialog"
	"VoiceBot/pkg/langdetect"
	"VoiceBot/pkg/log"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every subcommand shares: its own viper instance and the
// lazily built dialog engine.
type app struct {
	v        *viper.Viper
	cfgFile  string
	logger   *logrus.Logger
	engine   *dialog.Engine
	detector *langdetect.Detector
}

func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "voicebot",
		Short: "English and Hindi voice bot dialog engine",
		Long: `voicebot runs the English/Hindi dialog engine from the terminal.

Examples:
  voicebot chat
  voicebot chat --language hi
  voicebot chat --server ws://localhost:3000/api/v1/chat/ws
  voicebot ask "what languages do you support"
  voicebot intents`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	root.PersistentFlags().String("language", "", "reply language (en or hi); auto-detected when empty")

	_ = a.v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = a.v.BindPFlag("language", root.PersistentFlags().Lookup("language"))
	_ = a.v.BindEnv("jwt_secret", "JWT_ACCESS_TOKEN_SECRET")

	root.AddCommand(
		newChatCmd(a),
		newAskCmd(a),
		newIntentsCmd(a),
		newTokenCmd(a),
	)

	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", a.cfgFile, err)
		}
	}
	a.v.AutomaticEnv()

	level := "warn"
	if a.v.GetBool("debug") {
		level = "debug"
	}
	a.logger = log.NewLogger(log.Options{Level: level, AppEnv: "cli"})
	a.detector = langdetect.New(langdetect.DefaultConfidenceThreshold)

	return nil
}

func (a *app) dialogEngine() (*dialog.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}

	engine, err := dialog.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("building dialog engine: %w", err)
	}
	a.engine = engine
	return engine, nil
}

// language returns the pinned language or detects one from text.
func (a *app) language(text string) string {
	if lang := a.v.GetString("language"); lang != "" {
		return lang
	}
	if a.detector.IsHindi(text) {
		return langdetect.Hindi
	}
	return langdetect.English
}
