package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/campshare/campshare-cli/internal/shell"
	"github.com/campshare/campshare-cli/internal/viewmodel"
)

// runTripWizard drives the trip-creation modal over prompts. The form
// view-model owns all validation and submission state; the wizard only
// feeds it input and echoes its messages.
func runTripWizard(ctx context.Context, app *shell.App, in *bufio.Scanner) {
	app.OpenTripForm()
	form := app.Form()
	if form == nil {
		return
	}

	fmt.Println("\n-- Log a camping trip ('.' keeps the shown value, 'cancel' aborts) --")

	// Campground selection comes first: free-typed text is never accepted
	// without an explicit pick from the results.
	if !pickCampground(ctx, form, in) {
		app.CloseTripForm()
		return
	}

	fields := []struct {
		label string
		def   func(viewmodel.FormSnapshot) string
		set   func(string)
	}{
		{"title", func(s viewmodel.FormSnapshot) string { return s.Title }, form.SetTitle},
		{"description", func(viewmodel.FormSnapshot) string { return "" }, form.SetDescription},
		{"start date (YYYY-MM-DD)", func(s viewmodel.FormSnapshot) string { return s.StartDate }, form.SetStartDate},
		{"end date (YYYY-MM-DD)", func(s viewmodel.FormSnapshot) string { return s.EndDate }, form.SetEndDate},
		{"notes", func(viewmodel.FormSnapshot) string { return "" }, form.SetNotes},
		{"weather", func(viewmodel.FormSnapshot) string { return "" }, form.SetWeather},
	}
	for _, f := range fields {
		def := f.def(form.Snapshot())
		if def != "" {
			fmt.Printf("%s [%s]: ", f.label, def)
		} else {
			fmt.Printf("%s: ", f.label)
		}
		if !in.Scan() {
			app.CloseTripForm()
			return
		}
		val := strings.TrimSpace(in.Text())
		if val == "cancel" {
			app.CloseTripForm()
			return
		}
		if val != "" && val != "." {
			f.set(val)
		}
	}

	fmt.Printf("group size [%d]: ", form.Snapshot().GroupSize)
	if in.Scan() {
		if n, err := strconv.Atoi(strings.TrimSpace(in.Text())); err == nil {
			form.SetGroupSize(n)
		}
	}

	form.Submit(ctx)
	snap := form.Snapshot()
	if snap.ErrMsg != "" {
		fmt.Println(snap.ErrMsg)
		app.CloseTripForm()
		return
	}
	fmt.Println(snap.SuccessMsg)

	// The form resets and dismisses itself shortly; wait it out so the
	// map refresh it triggers lands before the next render.
	for app.ModalOpen() {
		time.Sleep(50 * time.Millisecond)
	}
}

// pickCampground runs the incremental search-and-select sub-flow until
// the user has chosen a result.
func pickCampground(ctx context.Context, form *viewmodel.TripForm, in *bufio.Scanner) bool {
	for {
		fmt.Print("campground search (2+ chars): ")
		if !in.Scan() {
			return false
		}
		q := strings.TrimSpace(in.Text())
		if q == "cancel" {
			return false
		}
		form.SearchCampgrounds(ctx, q)

		snap := form.Snapshot()
		if snap.ErrMsg != "" {
			fmt.Println(snap.ErrMsg)
			continue
		}
		if len(snap.Results) == 0 {
			fmt.Println("no results, try again")
			continue
		}
		for i, cg := range snap.Results {
			fmt.Printf("  %d) %s - %s\n", i+1, cg.Name, cg.Location)
		}
		fmt.Print("pick a number (or blank to search again): ")
		if !in.Scan() {
			return false
		}
		choice := strings.TrimSpace(in.Text())
		if choice == "" {
			continue
		}
		if n, err := strconv.Atoi(choice); err == nil && form.Select(n-1) {
			fmt.Printf("selected: %s\n", form.Snapshot().Query)
			return true
		}
		fmt.Println("invalid choice")
	}
}
