package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/memomap/internal/client/controllers"
	"github.com/dmitrijs2005/memomap/internal/client/models"
	"github.com/dmitrijs2005/memomap/internal/client/navigation"
	"github.com/dmitrijs2005/memomap/internal/common"
)

// Feed loads and prints every user's memories.
func (a *App) Feed(ctx context.Context) error {
	if err := a.listCtl.FetchFeed(ctx); err != nil {
		return err
	}
	a.printList()
	return nil
}

// Mine loads and prints the current user's memories.
func (a *App) Mine(ctx context.Context) error {
	if err := a.listCtl.FetchMine(ctx); err != nil {
		return err
	}
	a.printList()
	return nil
}

func (a *App) printList() {
	snap := a.listCtl.Snapshot()
	if len(snap.Status.Items) == 0 {
		printlnFn("No memories")
		return
	}
	printlnFn(fmt.Sprintf("%s (%d):", snap.Source, len(snap.Status.Items)))
	for _, m := range snap.Status.Items {
		printlnFn(" ", m.String())
	}
}

// Show loads a single memory by id.
func (a *App) Show(ctx context.Context, id int) error {
	if id <= 0 {
		return common.ErrInvalidID
	}
	if err := a.itemCtl.Get(ctx, id); err != nil {
		return err
	}
	if m := a.itemCtl.Status().Item; m != nil {
		printMemory(*m)
	}
	return nil
}

// Create opens the create screen, prompts for the new memory and returns to
// the previous screen whether or not the server accepted it.
func (a *App) Create(ctx context.Context) error {
	a.nav.Navigate(navigation.CreateScreen, navigation.NavOptions{SingleTop: true})
	defer a.nav.Back()
	a.itemCtl.Reset()

	caption, err := getSimpleText(a.scanner, "Caption", a.out)
	if err != nil {
		return err
	}
	image, err := getSimpleText(a.scanner, "Image URL or local file", a.out)
	if err != nil {
		return err
	}
	location, err := a.promptLocation(nil)
	if err != nil {
		return err
	}

	if err := a.itemCtl.Create(ctx, caption, image, location); err != nil {
		return err
	}
	printlnFn("Memory created")
	if m := a.itemCtl.Status().Item; m != nil {
		printMemory(*m)
	}
	return nil
}

// Edit opens the edit screen for id. Empty answers keep the current value;
// "-" clears the location. A non-positive id leaves the screen at once
// with common.ErrInvalidID.
func (a *App) Edit(ctx context.Context, id int) error {
	a.nav.Navigate(navigation.EditScreen(id), navigation.NavOptions{SingleTop: true})
	if a.nav.Current().Kind != navigation.EditMemory {
		return common.ErrInvalidID
	}
	defer a.nav.Back()

	if err := a.itemCtl.Get(ctx, id); err != nil {
		return err
	}
	current := a.itemCtl.Status().Item
	if current == nil {
		return nil
	}
	printMemory(*current)

	caption, err := getSimpleText(a.scanner, "Caption (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	if caption == "" {
		caption = current.Caption
	}
	image, err := getSimpleText(a.scanner, "Image URL or local file (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	location, err := a.promptLocation(current.Location)
	if err != nil {
		return err
	}

	if err := a.itemCtl.Update(ctx, id, caption, image, location); err != nil {
		return err
	}
	printlnFn("Memory updated")
	return nil
}

// Delete removes memory id after confirmation.
func (a *App) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return common.ErrInvalidID
	}
	answer, err := getSimpleText(a.scanner, fmt.Sprintf("Delete memory #%d? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.itemCtl.Delete(ctx, id); err != nil {
		return err
	}
	printlnFn("Memory deleted")
	return nil
}

// promptLocation reads a location. An empty answer keeps current; "-"
// clears it.
func (a *App) promptLocation(current *string) (*string, error) {
	a.itemCtl.SetFetchingLocation(true)
	defer a.itemCtl.SetFetchingLocation(false)

	loc, err := GetOptionalText(a.scanner, "Location (optional)", a.out)
	if err != nil {
		return nil, err
	}
	switch {
	case loc == nil:
		return current, nil
	case *loc == "-":
		return nil, nil
	}
	return loc, nil
}

func printMemory(m models.MemoryPost) {
	printlnFn(m.String())
}

var _ controllers.Router = (*navigation.Navigator)(nil)
