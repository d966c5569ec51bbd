package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/application"
	appanalysis "github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/analysis"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/config"
	domain "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/users"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/infra/apiclient"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/infra/preview"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/infra/terminal"
)

var (
	serverURL string
	kindFlag  string
	email     string
	password  string
	name      string
)

// app bundles the explicit per-run state: no package-level mutable state,
// everything hangs off this container.
type app struct {
	state  *application.State
	client *apiclient.Client
	svc    *appanalysis.Service
}

func newApp() (*app, error) {
	client, err := apiclient.New(serverURL)
	if err != nil {
		return nil, err
	}
	state := application.NewState(preview.New())
	return &app{
		state:  state,
		client: client,
		svc: &appanalysis.Service{
			Remote:  client,
			History: state.History,
			Loading: terminal.NewSpinner(),
			Clock:   application.SystemClock{},
			Sleeper: application.SystemSleeper{},
		},
	}, nil
}

// login runs the credential flow when flags are given; analyze works
// without it (the backend falls back to the demo account).
func (a *app) login(ctx context.Context) error {
	if email == "" && password == "" {
		return nil
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.New("Please enter email and password")
	}
	acct, err := a.client.Login(ctx, email, password)
	if err != nil {
		return loginError(err)
	}
	a.state.OnLoginSuccess(&users.User{ID: acct.ID, Name: acct.Name, Email: acct.Email})
	fmt.Printf("Logged in as %s\n", acct.Name)
	return nil
}

func loginError(err error) error {
	if errors.Is(err, domain.ErrServiceUnavailable) {
		return errors.New("Backend not running! Start it with: ai-detector-api")
	}
	return err
}

func main() {
	root := &cobra.Command{
		Use:   "ai-detector",
		Short: "Client for the AI-generated image/video detector",
		Long: `Submits images and videos to the detector backend, renders the verdict
with per-indicator scores and keeps a short history of past analyses.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if serverURL != "" {
				return
			}
			serverURL = "http://localhost:5000"
			path := "config.yaml"
			if v := os.Getenv("CONFIG_PATH"); v != "" {
				path = v
			}
			if cfg, err := config.Load(path); err == nil {
				serverURL = cfg.Client.BaseURL
			}
		},
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "", "backend base URL (default from config.yaml)")

	root.AddCommand(healthCmd(), loginCmd(), registerCmd(), analyzeCmd(), demoCmd(), historyCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the backend connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.client.Health(cmd.Context()); err != nil {
				log.Printf("backend check failed: %v", err)
				return loginError(err)
			}
			fmt.Println("Backend connected!")
			return nil
		},
	}
}

func loginCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if strings.TrimSpace(email) == "" || password == "" {
				return errors.New("Please enter email and password")
			}
			return a.login(cmd.Context())
		},
	}
	c.Flags().StringVar(&email, "email", "", "account email")
	c.Flags().StringVar(&password, "password", "", "account password")
	return c
}

func registerCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			// same local checks the signup form ran before calling out
			if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
				return errors.New("Please fill all fields")
			}
			if len(password) < 6 {
				return errors.New("Password must be at least 6 characters")
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			acct, err := a.client.Register(cmd.Context(), name, email, password)
			if err != nil {
				return loginError(err)
			}
			a.state.OnLoginSuccess(&users.User{ID: acct.ID, Name: acct.Name, Email: acct.Email})
			fmt.Printf("Registered %s\n", acct.Email)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "display name")
	c.Flags().StringVar(&email, "email", "", "account email")
	c.Flags().StringVar(&password, "password", "", "account password")
	return c
}

func analyzeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "analyze <file> [file...]",
		Short: "Submit media files for analysis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.login(cmd.Context()); err != nil {
				return err
			}

			sess := a.state.Session
			if kindFlag == string(domain.KindVideo) {
				sess.SetKind(domain.KindVideo)
			}

			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil {
					return err
				}

				sess.Select(cmd.Context(), domain.File{
					Name: filepath.Base(arg),
					Path: arg,
					Size: info.Size(),
				})
				fmt.Printf("Analyzing %s (%s)...\n", filepath.Base(arg), preview.SizeLabel(info.Size()))

				res, err := a.svc.SubmitSelected(cmd.Context(), sess)
				if err != nil {
					if errors.Is(err, domain.ErrServiceUnavailable) {
						return errors.New("Backend not running! Start it with: ai-detector-api")
					}
					var rerr *domain.RemoteError
					if errors.As(err, &rerr) {
						return fmt.Errorf("Analysis failed: %s", rerr.Message)
					}
					return err
				}
				printResult(res)
				sess.Reset()
			}

			printHistory(a.state.History.List())
			return nil
		},
	}
	c.Flags().StringVar(&kindFlag, "kind", string(domain.KindImage), "detection kind: image or video")
	c.Flags().StringVar(&email, "email", "", "account email (optional)")
	c.Flags().StringVar(&password, "password", "", "account password (optional)")
	return c
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "demo <ai|real>",
		Short:     "Run a synthetic analysis without the backend",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"ai", "real"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			res := a.svc.SubmitDemo(cmd.Context(), appanalysis.DemoKind(args[0]))
			printResult(res)
			printHistory(a.state.History.List())
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "Show the server-side analysis history",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.login(cmd.Context()); err != nil {
				return err
			}
			recs, err := a.client.History(cmd.Context())
			if err != nil {
				return loginError(err)
			}
			if len(recs) == 0 {
				fmt.Println("No analysis history yet")
				return nil
			}
			for _, rec := range recs {
				fmt.Printf("%-30s %-20s %5.1f%%  %s\n",
					rec.FileName, rec.Verdict, rec.Confidence,
					rec.Timestamp.Format(domain.TimestampLayout))
			}
			return nil
		},
	}
	c.Flags().StringVar(&email, "email", "", "account email (optional)")
	c.Flags().StringVar(&password, "password", "", "account password (optional)")
	return c
}
