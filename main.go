package main

import (
	"context"
	"os"
	"os/signal"
	"ryzexbot/internal/adapters/file"
	"ryzexbot/internal/adapters/generator"
	"ryzexbot/internal/adapters/handler"
	"ryzexbot/internal/adapters/metrics"
	"ryzexbot/internal/adapters/provider"
	"ryzexbot/internal/adapters/sender"
	"ryzexbot/internal/adapters/speech"
	"ryzexbot/internal/config"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/domain/command"
	"ryzexbot/internal/core/port"
	"ryzexbot/internal/core/service"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Info().Msg("starting ryzexbot...")

	log.Info().Msg("reading config...")
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	logLevel, err := zerolog.ParseLevel(cfg.Bot.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := metrics.New()
	if cfg.Metrics.Enabled {
		go metrics.NewServer(cfg.Metrics.Addr, m).Run(ctx)
	}

	store, err := file.NewStore(cfg.Media.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing media store")
	}

	textGenerator, closeGenerator := newTextGenerator(ctx, cfg)
	defer closeGenerator()

	greetings := service.NewGreeter()
	scheduler := service.NewScheduler(ctx, service.SchedulerParams{
		DeliveryTimeout: cfg.Reminder.DeliveryTimeout,
		Gauge:           m.RemindersPending(),
	})

	providerOpts := provider.Options{Timeout: cfg.HTTP.Timeout, Recorder: m}

	commandRegistry := &command.Registry{}

	// the default handler is fixed at bot creation, the welcome menu needs the bot to send
	welcome := &lateGreeter{}
	greeting := handler.NewGreeting(greetings, welcome)

	b, err := bot.New(cfg.Telegram.BotToken, bot.WithDefaultHandler(greeting.Handle))
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegram(b)
	start := command.NewStart(s, greetings, "/start")
	welcome.Greeter = start

	commandRegistry.Register(start)
	commandRegistry.Register(command.NewHelp(commandRegistry, s, "/help"))
	commandRegistry.Register(command.NewChat(textGenerator, s, "/chat"))
	commandRegistry.Register(command.NewWeather(provider.NewOpenWeather(cfg.OpenWeather.APIKey, providerOpts),
		s, "/weather"))
	commandRegistry.Register(command.NewNews(
		provider.NewNewsAPI(cfg.News.APIKey, cfg.News.Country, cfg.News.Category, providerOpts), s, "/news"))
	commandRegistry.Register(command.NewRemind(scheduler, s, "/remind"))
	commandRegistry.Register(command.NewFun(provider.NewUselessFacts(providerOpts), s, "/fun"))
	commandRegistry.Register(command.NewTrivia(provider.NewOpenTDB(providerOpts), s, "/trivia"))
	commandRegistry.Register(command.NewImage(
		generator.NewHuggingFace(cfg.HuggingFace.URL, cfg.HuggingFace.Model, cfg.HuggingFace.APIKey,
			cfg.HTTP.Timeout),
		s, s, "/image"))
	commandRegistry.Register(command.NewSay(
		speech.NewGTTS(cfg.TTS.URL, cfg.TTS.Language, store, cfg.HTTP.Timeout),
		store, s, s, "/say"))
	commandRegistry.Register(command.NewCrypto(provider.NewCoinGecko(providerOpts), s, "/crypto"))
	commandRegistry.Register(command.NewStock(provider.NewFMP(cfg.FMP.APIKey, providerOpts), s, "/stock"))

	if cfg.FAL.Enabled() {
		commandRegistry.Register(command.NewTranscribe(
			generator.NewFAL(cfg.FAL.WhisperURL, cfg.FAL.APIKey, cfg.HTTP.Timeout), s, "/transcribe"))
	} else {
		log.Info().Msg("FAL_API_KEY not set, speech recognition disabled")
	}

	commandHandler := handler.NewCommand(commandRegistry, cfg.Handler.Timeout, m)
	callbackHandler := handler.NewCallback(commandRegistry, s, s, cfg.Handler.Timeout, m)

	b.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, commandHandler.Handle)
	b.RegisterHandler(bot.HandlerTypePhotoCaption, "/", bot.MatchTypePrefix, commandHandler.Handle)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, callbackHandler.Handle)

	log.Info().Strs("commands", commandRegistry.ListCommands()).Msg("bot listening")
	b.Start(ctx)
}

func newTextGenerator(ctx context.Context, cfg config.Config) (port.TextGenerator, func()) {
	if cfg.Chat.Provider == config.ProviderOpenRouter {
		return generator.NewOpenRouter(cfg.OpenRouter.APIKey, cfg.OpenRouter.Model, cfg.Chat.SystemPrompt), func() {}
	}

	g, err := generator.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Chat.SystemPrompt)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing gemini client")
	}

	return g, func() {
		if err := g.Close(); err != nil {
			log.Warn().Err(err).Msg("failed closing gemini client")
		}
	}
}

type lateGreeter struct {
	handler.Greeter
}

func (l *lateGreeter) Greet(ctx context.Context, message *domain.Message) error {
	if l.Greeter == nil {
		return nil
	}

	return l.Greeter.Greet(ctx, message)
}
