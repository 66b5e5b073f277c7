package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/campshare/campshare-cli/internal/model"
	"github.com/campshare/campshare-cli/internal/shell"
	"github.com/campshare/campshare-cli/internal/viewmodel"
)

// renderPanel draws the active panel as plain text.
func renderPanel(app *shell.App) {
	switch app.Panel() {
	case shell.PanelFriends:
		if fv := app.Friends(); fv != nil {
			renderFriends(fv.Snapshot())
		}
	default:
		if mv := app.Map(); mv != nil {
			renderMap(mv)
		}
	}
}

func renderMap(mv *viewmodel.MapView) {
	snap := mv.Snapshot()
	fmt.Printf("\n-- Trip map [my trips: %s | friends: %s] --\n",
		onOff(snap.IncludeOwn), onOff(snap.IncludeFriends))

	switch snap.Status {
	case viewmodel.StatusLoading:
		fmt.Println("loading camping trips...")
		return
	case viewmodel.StatusError:
		fmt.Printf("%s ('refresh' to retry)\n", snap.ErrMsg)
		return
	}

	if len(snap.Trips) == 0 {
		fmt.Printf("no trips; viewport at default center (%.4f, %.4f) zoom %d\n",
			viewmodel.DefaultCenterLat, viewmodel.DefaultCenterLng, viewmodel.DefaultZoom)
		return
	}
	if b, ok := mv.Bounds(); ok {
		fmt.Printf("viewport fit to [%.4f,%.4f]..[%.4f,%.4f]\n", b.South, b.West, b.North, b.East)
	}
	for _, t := range snap.Trips {
		marker := "friend"
		if t.IsOwnTrip {
			marker = "mine  "
		}
		fmt.Printf("  [%s] %s by %s (%s to %s) @ %s (%.4f, %.4f)\n",
			marker, t.Title, t.User.FullName, t.StartDate, t.EndDate,
			t.Campground.Name, t.Campground.Latitude, t.Campground.Longitude)
		if am := formatAmenities(t.Campground.Amenities); am != "" {
			fmt.Printf("          amenities: %s\n", am)
		}
	}
}

func renderFriends(snap viewmodel.FriendsSnapshot) {
	fmt.Println("\n-- Friends --")
	if snap.Message != "" {
		fmt.Printf("* %s\n", snap.Message)
	}
	if snap.Query != "" {
		fmt.Printf("search %q:\n", snap.Query)
		if len(snap.Results) == 0 {
			fmt.Println("  no results")
		}
		for _, r := range snap.Results {
			fmt.Printf("  %s (%s) - %s\n", r.Username, r.FullName, statusLabel(r.RelationshipStatus))
		}
	}
	fmt.Printf("pending requests (%d):\n", len(snap.Pending))
	for _, p := range snap.Pending {
		fmt.Printf("  #%d from %s (%s)\n", p.ID, p.SenderUsername, p.SenderFullName)
	}
	fmt.Printf("friends (%d):\n", len(snap.Friends))
	for _, f := range snap.Friends {
		fmt.Printf("  #%d %s (%s)\n", f.ID, f.FriendUsername, f.FriendFullName)
	}
}

func statusLabel(s model.RelationshipStatus) string {
	switch s {
	case model.RelationshipFriends:
		return "Friends"
	case model.RelationshipRequestSent:
		return "Request Sent"
	case model.RelationshipRequestReceived:
		return "Request Received"
	default:
		return "Add Friend ('add <username>')"
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// formatAmenities unpacks the serialized amenity list; anything that is
// not a JSON array is shown as-is.
func formatAmenities(raw string) string {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return strings.Join(list, ", ")
	}
	return raw
}
