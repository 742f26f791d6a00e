package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/haguremetal/hookgate/pkg/brand"
	"github.com/haguremetal/hookgate/pkg/caching"
	"github.com/haguremetal/hookgate/pkg/color"
	"github.com/haguremetal/hookgate/pkg/endpoint"
	"github.com/haguremetal/hookgate/pkg/payload"
	"github.com/haguremetal/hookgate/pkg/relay"
	"github.com/haguremetal/hookgate/pkg/webhook"
)

func main() {
	root := &cobra.Command{
		Use:          "hookgate",
		Short:        "Webhook notification gateway",
		SilenceUsage: true,
	}
	root.AddCommand(serveCommand(), sendCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the notification gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfiguration(configPath)
			if err != nil {
				return err
			}

			server, err := buildServer(config)
			if err != nil {
				return err
			}
			defer server.Close()

			log.Printf("Serving notifications on port %d", config.APIPort)
			return server.Run()
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file")

	return cmd
}

func buildServer(config *Configuration) (*relay.Server, error) {
	dedupeTTL, err := time.ParseDuration(config.DedupeTTL)
	if err != nil {
		return nil, fmt.Errorf("parsing DedupeTTL: %w", err)
	}

	collapseWindow, err := time.ParseDuration(config.CollapseWindow)
	if err != nil {
		return nil, fmt.Errorf("parsing CollapseWindow: %w", err)
	}

	sendTimeout, err := time.ParseDuration(config.SendTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing SendTimeout: %w", err)
	}

	endpoints := endpoint.NewManager(config.MaxTargets)
	for _, target := range config.Targets {
		err := endpoints.Register(endpoint.New(&endpoint.EndpointOptions{
			Name:    target.Name,
			URL:     target.URL,
			Channel: target.Channel,
		}))
		if err != nil {
			return nil, fmt.Errorf("registering target %q: %w", target.Name, err)
		}
	}

	var cache *caching.Cache
	if config.RedisAddr != "" {
		cache = caching.NewCache(config.RedisAddr)
	} else {
		cache = caching.NewMemoryCache()
	}

	return relay.NewServer(&relay.ServerOptions{
		APIPort:        config.APIPort,
		QueueSize:      config.QueueSize,
		Endpoints:      endpoints,
		Cache:          cache,
		Brand:          brand.New(config.DefaultUsername, config.DefaultIconEmoji),
		DedupeTTL:      dedupeTTL,
		CollapseWindow: collapseWindow,
		SendTimeout:    sendTimeout,
	}), nil
}

func sendCommand() *cobra.Command {
	var (
		configPath string
		target     string
		urls       []string
		text       string
		channel    string
		colorSpec  string
		title      string
		fallback   string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a single notification to a webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(urls) == 0 {
				if target == "" {
					return errors.New("either --url or --target is required")
				}

				config, err := loadConfiguration(configPath)
				if err != nil {
					return err
				}

				found := false
				for _, t := range config.Targets {
					if t.Name == target {
						urls = append(urls, t.URL)
						if channel == "" {
							channel = t.Channel
						}
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("target %q: %w", target, endpoint.ErrUnknownEndpoint)
				}
			}

			m, err := buildMessage(text, channel, title, colorSpec, fallback)
			if err != nil {
				return err
			}

			sender, err := buildSender(urls)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := sender.Send(m, ctx); err != nil {
				return err
			}

			fmt.Println("Delivered")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file")
	cmd.Flags().StringVar(&target, "target", "", "configured target to send to")
	cmd.Flags().StringArrayVar(&urls, "url", nil, "webhook URL, repeatable for fan-out")
	cmd.Flags().StringVar(&text, "text", "", "message text")
	cmd.Flags().StringVar(&channel, "channel", "", "channel override")
	cmd.Flags().StringVar(&colorSpec, "color", "", "attachment color: good, warning, danger or #RRGGBB")
	cmd.Flags().StringVar(&title, "title", "", "attachment title")
	cmd.Flags().StringVar(&fallback, "fallback", "", "attachment fallback text")

	return cmd
}

func buildMessage(text string, channel string, title string, colorSpec string, fallback string) (*payload.Message, error) {
	m := payload.NewMessage(payload.Escape(text))
	m.Channel = channel

	if colorSpec == "" && title == "" {
		return m, nil
	}

	if fallback == "" {
		fallback = title
	}
	if fallback == "" {
		fallback = text
	}

	a := payload.NewAttachment(fallback)
	a.Text = payload.Escape(text)
	a.Pretext = payload.Escape(title)

	if colorSpec != "" {
		c, err := color.Parse(colorSpec)
		if err != nil {
			return nil, err
		}
		a.WithColor(c)
	}

	m.Text = ""
	m.Attach(a)

	return m, nil
}

// buildSender returns a plain client for one URL and a broadcast
// fan-out for several.
func buildSender(urls []string) (webhook.Sender, error) {
	if len(urls) == 1 {
		return webhook.NewClient(&webhook.ClientOptions{URL: urls[0]}), nil
	}

	b := webhook.NewBroadcast(len(urls))
	for _, url := range urls {
		if err := b.Set(webhook.NewClient(&webhook.ClientOptions{URL: url})); err != nil {
			return nil, err
		}
	}

	return b, nil
}
