package main

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordwise/internal/answer"
	"github.com/verte-zerg/wordwise/internal/stats"
)

const menuText = `
Main Menu
1.study daily word
2.add new word
3.view all words
4.delete word
5.check your stats
6.exit`

func runMenuCmd(cmd *cobra.Command, _ []string) error {
	return withApp(func(ctx context.Context, a *app, _ []string) error {
		return a.menu(ctx)
	})(cmd, nil)
}

// menu runs the numbered menu until the user exits or the input ends.
// Every failure is reported and the loop keeps running.
func (a *app) menu(ctx context.Context) error {
	a.println("Welcome to WordWise - Flashcard Application")
	a.println("==========================================")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		a.println(menuText)
		a.printf("\nEnter your choice (1-6): ")
		line, err := a.reader.ReadLine()
		if err != nil {
			return a.endOfInput(err)
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			a.println("Please enter a valid number!")
			continue
		}

		switch choice {
		case 1:
			err = a.practice(ctx, today())
		case 2:
			err = a.menuAdd(ctx)
		case 3:
			err = a.list()
		case 4:
			err = a.menuRemove(ctx)
		case 5:
			err = stats.RenderSummary(a.out, a.session.Stats())
		case 6:
			a.println("Thank you for using WordWise! Bye!")
			return nil
		default:
			a.println("Invalid choice! Please try again.")
			continue
		}
		if err != nil {
			if errors.Is(err, answer.ErrNoInput) {
				return nil
			}
			a.println(userMessage(err))
		}
	}
}

func (a *app) menuAdd(ctx context.Context) error {
	a.printf("Enter the new English word: ")
	term, err := a.reader.ReadLine()
	if err != nil {
		return err
	}
	if term == "" {
		a.println("Word cannot be empty!")
		return nil
	}
	a.printf("Enter the meaning of the word: ")
	meaning, err := a.reader.ReadLine()
	if err != nil {
		return err
	}
	if meaning == "" {
		a.println("Meaning cannot be empty!")
		return nil
	}
	return a.add(ctx, term, meaning)
}

func (a *app) menuRemove(ctx context.Context) error {
	a.printf("Enter the word to delete: ")
	term, err := a.reader.ReadLine()
	if err != nil {
		return err
	}
	if term == "" {
		a.println("Word cannot be empty!")
		return nil
	}
	return a.remove(ctx, term)
}

func (a *app) endOfInput(err error) error {
	if errors.Is(err, answer.ErrNoInput) {
		a.println()
		return nil
	}
	return err
}
