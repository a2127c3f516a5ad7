package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/saathi-app/saathi/pkg/cli/config"
	"github.com/saathi-app/saathi/pkg/domain/types"
	"github.com/saathi-app/saathi/pkg/usecase"
	"github.com/saathi-app/saathi/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var userID string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var genaiCfg config.GenAI

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user-id",
			Usage:       "User ID to chat as",
			Value:       "local",
			Sources:     cli.EnvVars("SAATHI_CHAT_USER_ID"),
			Destination: &userID,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, genaiCfg.Flags()...)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Chat with the companion from the terminal",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			appFile, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			genaiSvc, err := genaiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize language model backend")
			}

			uc, err := usecase.New(repo, genaiSvc, appFile.UseCaseOptions()...)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			persona := appFile.Companion.Persona
			if persona == "" {
				persona = usecase.DefaultPersona
			}

			return runChatREPL(ctx, uc, types.UserID(userID), persona)
		},
	}
}

func runChatREPL(ctx context.Context, uc *usecase.UseCases, userID types.UserID, persona string) error {
	personaColor := color.New(color.FgCyan, color.Bold)
	promptColor := color.New(color.FgGreen)
	exerciseColor := color.New(color.FgYellow, color.Bold)
	errorColor := color.New(color.FgRed)

	fmt.Printf("Chatting with %s. Type 'exit' to quit.\n", personaColor.Sprint(persona))

	exerciseShown := false
	scanner := bufio.NewScanner(os.Stdin)
	for {
		promptColor.Print("you> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		out, err := uc.Chat.Chat(ctx, usecase.ChatInput{
			UserID:        userID,
			Message:       line,
			ExerciseShown: exerciseShown,
		})
		if err != nil {
			if errors.Is(err, usecase.ErrEmptyMessage) {
				continue
			}
			errorColor.Printf("error: %v\n", err)
			continue
		}

		fmt.Printf("%s> %s\n", personaColor.Sprint(persona), out.Response)
		if out.ShowExercise {
			exerciseShown = true
			exerciseColor.Println("[ breathing exercise: inhale 4s, hold 7s, exhale 8s ]")
		}
	}

	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read input")
	}
	return nil
}
