package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"inlaw/internal/config"
	"inlaw/internal/orchestrator"
	"inlaw/internal/state"
	"inlaw/internal/store"
)

var signOutYes bool

// statusCmd prints the stored session and preferences.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session and preferences",
	RunE:  runStatus,
}

// signOutCmd clears the store the way the interface's sign out does.
var signOutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out and clear all stored data",
	RunE:  runSignOut,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE:  runConfigInit,
}

func runStatus(cmd *cobra.Command, args []string) error {
	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	pairs, err := store.Dump(kv)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(out, "%s %s (%s)\n", bold("Store:"), cfg.Store.Driver, cfg.Store.Path)
	if pairs[store.KeyLoggedIn] == "true" {
		plan := state.ParsePlan(pairs[store.KeyUserPlan])
		fmt.Fprintf(out, "%s %s as %s\n", bold("Session:"), green("signed in"), pairs[store.KeyUserEmail])
		fmt.Fprintf(out, "%s %s\n", bold("Plan:"), plan.Label())
	} else {
		fmt.Fprintf(out, "%s %s\n", bold("Session:"), yellow("signed out"))
	}

	if len(pairs) == 0 {
		fmt.Fprintln(out, faint("(no stored keys)"))
		return nil
	}
	fmt.Fprintln(out)
	for _, k := range store.AllKeys {
		if v, ok := pairs[k]; ok {
			fmt.Fprintf(out, "  %-14s %s\n", k, v)
		}
	}
	return nil
}

func runSignOut(cmd *cobra.Command, args []string) error {
	if !signOutYes {
		fmt.Fprint(cmd.OutOrStdout(), "Are you sure you want to logout? [y/N] ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	var last state.Snapshot
	orch := newOrchestrator(kv, orchestrator.NewTaskQueue(), orchestrator.RenderFunc(func(s state.Snapshot) { last = s }))
	orch.Init()
	orch.SignOut()
	orch.ResolvePrompt(true)

	if last.Navigation.Warning != "" {
		return errors.New(last.Navigation.Warning)
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Signed out."))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
