package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veyrin/outpost/internal/api"
	"github.com/veyrin/outpost/internal/content"
	"github.com/veyrin/outpost/internal/encounter"
	"github.com/veyrin/outpost/internal/persistence"
	"github.com/veyrin/outpost/internal/session"
)

func newRunCmd() *cobra.Command {
	var (
		seed        int64
		days        int
		shipsPerDay int
		apiPort     int
		auto        bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a gate shift (interactive, or --auto for a scripted inspector)",
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := loadContent()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
				return err
			}
			db, err := persistence.Open(savePath)
			if err != nil {
				return err
			}
			defer db.Close()

			sess, err := openSession(db, defs, seed)
			if err != nil {
				return err
			}

			if apiPort > 0 {
				srv := &api.Server{Session: sess, Port: apiPort}
				srv.Start()
			}

			reader := bufio.NewReader(os.Stdin)
			for d := 0; d < days; d++ {
				fmt.Printf("\n━━ DAY %d AT FARLIGHT GATE ━━\n", sess.Day())
				for _, rule := range sess.ActiveRules(sess.Day()) {
					fmt.Printf("  directive: %s\n", rule.Description)
				}

				for i := 0; i < shipsPerDay; i++ {
					enc := sess.NextEncounter()
					printEncounter(enc)

					approve := autoVerdict(enc)
					if !auto {
						approve, err = promptVerdict(reader)
						if err != nil {
							return err
						}
					}
					sess.Decide(enc, approve)
				}

				sess.AdvanceDay()
				fmt.Print(sess.Feed().Render(sess.Day()))

				if err := saveSession(db, sess); err != nil {
					return fmt.Errorf("save: %w", err)
				}
			}

			fmt.Printf("\nprojected ending: %s\n", sess.DetermineEnding())
			fmt.Print(sess.Report())
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "session seed (new games only)")
	cmd.Flags().IntVar(&days, "days", 5, "days to run")
	cmd.Flags().IntVar(&shipsPerDay, "ships", 6, "encounters per day")
	cmd.Flags().IntVar(&apiPort, "api-port", 0, "observation API port (0 = off)")
	cmd.Flags().BoolVar(&auto, "auto", false, "scripted inspector instead of stdin prompts")
	return cmd
}

func loadContent() (*content.Content, error) {
	if contentPath == "" {
		return content.Seed(), nil
	}
	return content.Load(contentPath)
}

func openSession(db *persistence.DB, defs *content.Content, seed int64) (*session.Session, error) {
	if !db.HasState() {
		slog.Info("starting new game", "seed", seed)
		return session.New(defs, seed), nil
	}

	state, tokens, err := db.LoadState()
	if err != nil {
		return nil, fmt.Errorf("load save: %w", err)
	}
	savedSeed, err := db.Seed()
	if err != nil {
		savedSeed = seed
	}
	return session.Resume(defs, savedSeed, db.Draws(), db.Day(), db.Suspicion(), state, tokens), nil
}

func saveSession(db *persistence.DB, sess *session.Session) error {
	return db.SaveState(
		sess.Recorder().State(),
		sess.Ledger().Tokens(),
		sess.Day(),
		sess.Suspicion(),
		sess.Seed(),
		sess.Draws(),
	)
}

func printEncounter(enc *encounter.Encounter) {
	fmt.Printf("\n  %s — %s under %s colors\n", enc.ShipName, enc.CategoryID, enc.Faction)
	fmt.Printf("  captain: %s (%s)\n", enc.CaptainName, enc.CaptainFaction)
	if enc.AccessCode != nil {
		fmt.Printf("  access code: %s (%s)\n", enc.AccessCode.Code, enc.AccessCode.Level)
	} else {
		fmt.Printf("  access code: NONE PRESENTED\n")
	}
	if enc.Manifest != nil {
		fmt.Printf("  manifest: %s — %s (clearance: %s, origin: %s)\n",
			enc.Manifest.DeclaredGoods, enc.Manifest.Notes,
			enc.Manifest.RequiredClearance, enc.Manifest.Origin)
	}
}

// autoVerdict is the scripted inspector: it waves through anything that
// does not look suspicious. It is wrong on purpose some of the time — that
// is what makes consequences fire.
func autoVerdict(enc *encounter.Encounter) bool {
	return enc.Suspicion < 50
}

func promptVerdict(reader *bufio.Reader) (bool, error) {
	for {
		fmt.Print("  [a]pprove / [d]eny > ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", "approve":
			return true, nil
		case "d", "deny":
			return false, nil
		}
	}
}
