package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/veyrin/outpost/internal/narrative"
	"github.com/veyrin/outpost/internal/persistence"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Audit a save file: narrative state, history, and the token ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := persistence.Open(savePath)
			if err != nil {
				return err
			}
			defer db.Close()

			if !db.HasState() {
				fmt.Println("no saved session")
				return nil
			}

			state, tokens, err := db.LoadState()
			if err != nil {
				return err
			}

			defs, err := loadContent()
			if err != nil {
				return err
			}
			rec := narrative.NewRecorder(state, narrative.Thresholds{
				NeutralBand:                defs.Tuning.NeutralBand,
				ImperialLoyaltyThreshold:   defs.Tuning.ImperialLoyaltyThreshold,
				InsurgentSympathyThreshold: defs.Tuning.InsurgentSympathyThreshold,
				ComplexResistanceThreshold: defs.Tuning.ComplexResistanceThreshold,
			})

			fmt.Printf("save: %s\n", savePath)
			fmt.Printf("day %s, suspicion %d\n", humanize.Ordinal(db.Day()), db.Suspicion())
			fmt.Print(rec.GenerateReport())

			pending := 0
			for _, tok := range tokens {
				if !tok.Triggered {
					pending++
				}
			}
			fmt.Printf("token ledger: %s total, %d pending\n",
				humanize.Comma(int64(len(tokens))), pending)
			for _, tok := range tokens {
				status := "pending"
				if tok.Triggered {
					status = "triggered"
				}
				fmt.Printf("  day %d → %d  %-9s %s\n",
					tok.DayCreated, tok.TriggerDay, status, tok.Payload.ScenarioID)
			}
			return nil
		},
	}
}

func newGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "newgame",
		Short: "Wipe the save file for a fresh start",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := persistence.Open(savePath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.Wipe(); err != nil {
				return err
			}
			fmt.Println("save wiped; next run starts a new game")
			return nil
		},
	}
}
