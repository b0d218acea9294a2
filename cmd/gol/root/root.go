package root

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gamelife/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "gol",
	Short:         "Game of Life — gamified task manager",
	Long:          "Game of Life is a local single-user task manager with RPG progression:\ncompleting tasks earns XP, levels, ranks, streaks, and achievements;\nfailing them costs XP and breaks the streak.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	cobra.OnInitialize(initViper)

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringP("user", "u", "", "username (created on first use)")
	rootCmd.PersistentFlags().String("email", "", "email, recorded when the user is created")
	rootCmd.PersistentFlags().String("db", "", "database path (default ~/.gamelife.db)")
	rootCmd.PersistentFlags().String("config", "", "config file path (default ~/.gamelife.yml)")
	_ = viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))
	_ = viper.BindPFlag("email", rootCmd.PersistentFlags().Lookup("email"))
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(
		newAddCmd(),
		newDoneCmd(),
		newFailCmd(),
		newRmCmd(),
		newListCmd(),
		newAgendaCmd(),
		newOverdueCmd(),
		newStatusCmd(),
		newAchievementsCmd(),
		newLogCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

func initViper() {
	viper.SetEnvPrefix("GAMELIFE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
