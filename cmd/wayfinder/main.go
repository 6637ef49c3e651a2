package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"backend-wayfinder/internal/client/api"
	"backend-wayfinder/internal/client/collection"
	"backend-wayfinder/internal/client/location"
	"backend-wayfinder/internal/client/session"
)

const minPasswordLength = 6

// flagSource feeds the location provider from command-line flags. No flags
// means permission denied, which exercises the fallback region.
type flagSource struct {
	lat, lng string
}

func (f flagSource) RequestPermission(_ context.Context) (bool, error) {
	return f.lat != "" && f.lng != "", nil
}

func (f flagSource) Current(_ context.Context) (location.Position, error) {
	lat, err := strconv.ParseFloat(f.lat, 64)
	if err != nil {
		return location.Position{}, err
	}
	lng, err := strconv.ParseFloat(f.lng, 64)
	if err != nil {
		return location.Position{}, err
	}
	return location.Position{Latitude: lat, Longitude: lng}, nil
}

func main() {
	server := flag.String("server", "http://localhost:8080", "wayfinder backend URL")
	lat := flag.String("lat", "", "current latitude")
	lng := flag.String("lng", "", "current longitude")
	flag.Parse()

	ctx := context.Background()
	client := api.NewClient(*server)
	store := session.NewStore(client)
	defer store.Close()
	ctrl := collection.NewController(client, store.UserID)

	fix := location.NewProvider(flagSource{lat: *lat, lng: *lng}).Acquire(ctx)
	if fix.Err != "" {
		fmt.Println(fix.Err)
	}
	fmt.Printf("Map region: %.5f, %.5f\n", fix.Region.Latitude, fix.Region.Longitude)

	reader := bufio.NewReader(os.Stdin)
	for {
		if store.CurrentUser() == nil {
			if !authScreen(ctx, reader, client) {
				return
			}
			continue
		}
		if !runCommand(ctx, reader, store, ctrl, fix) {
			return
		}
	}
}

// authScreen is the sign-in/sign-up form. Validation runs locally before any
// provider call. Returns false when the user quits.
func authScreen(ctx context.Context, reader *bufio.Reader, client *api.Client) bool {
	mode := prompt(reader, "sign [i]n, sign [u]p, or [q]uit: ")
	if mode == "q" {
		return false
	}

	email := prompt(reader, "email: ")
	password := prompt(reader, "password: ")

	if email == "" || password == "" {
		fmt.Println("Please fill in all fields")
		return true
	}
	if len([]rune(password)) < minPasswordLength {
		fmt.Println("Password must be at least 6 characters")
		return true
	}

	var err error
	if mode == "u" {
		_, err = client.Register(ctx, email, password)
	} else {
		_, err = client.Login(ctx, email, password)
	}
	if err != nil {
		fmt.Println(api.FriendlyMessage(err))
		return true
	}
	fmt.Println("Signed in as", email)
	return true
}

func runCommand(ctx context.Context, reader *bufio.Reader, store *session.Store, ctrl *collection.Controller, fix location.Fix) bool {
	switch prompt(reader, "wayfinder [list add edit delete logout quit]> ") {
	case "list":
		if err := ctrl.Reload(ctx); err != nil {
			fmt.Println("Failed to load waypoints:", err)
			return true
		}
		for _, wp := range ctrl.Waypoints() {
			fmt.Printf("[%s] %-6s %s (%.5f, %.5f) by %s\n", wp.ID, ctrl.PinColor(wp), wp.Name, wp.Latitude, wp.Longitude, wp.CreatedBy)
		}
	case "add":
		name := prompt(reader, "name: ")
		if strings.TrimSpace(name) == "" {
			fmt.Println("Waypoint name is required")
			return true
		}
		description := prompt(reader, "description: ")
		if err := ctrl.Add(ctx, name, fix.Region.Latitude, fix.Region.Longitude, description); err != nil {
			fmt.Println("Failed to add waypoint:", api.FriendlyMessage(err))
			return true
		}
		fmt.Println("Waypoint added successfully!")
	case "edit":
		id := prompt(reader, "waypoint id: ")
		name := prompt(reader, "new name: ")
		description := prompt(reader, "new description: ")
		res, err := ctrl.Update(ctx, id, name, description)
		if err != nil {
			fmt.Println("Failed to update waypoint:", api.FriendlyMessage(err))
			return true
		}
		fmt.Println(res.Message)
	case "delete":
		id := prompt(reader, "waypoint id: ")
		for _, wp := range ctrl.Waypoints() {
			if wp.ID != id {
				continue
			}
			res, err := ctrl.DeleteWithConfirm(ctx, wp, func(title, message string) bool {
				fmt.Println(title + ": " + message)
				return prompt(reader, "delete? [y/N]: ") == "y"
			})
			if err != nil {
				fmt.Println("Failed to delete waypoint:", api.FriendlyMessage(err))
				return true
			}
			fmt.Println(res.Message)
			return true
		}
		fmt.Println("No such waypoint in the current list; run list first")
	case "logout":
		store.Logout(ctx)
		fmt.Println("Signed out")
	case "quit", "q":
		return false
	}
	return true
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
