package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8000"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "seed":
		seedCmd(apiURL, args)
	case "sessions":
		sessionsCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Simulator - Development tool for populating a local backend

USAGE:
  simulator <command> [options]

COMMANDS:
  seed      Register channels, publish videos, build playlists, tweets and subscriptions
  sessions  Log in and walk the refresh token rotation, checking that reuse is rejected
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8000)

EXAMPLES:
  # Three channels, each publishing ./sample.mp4 twice
  simulator seed --video=./sample.mp4 --count=3 --videos=2

  # Rotate a fresh session five times
  simulator sessions --rotations=5`)
}

// placeholderAvatar renders a small solid-colour PNG so registration needs no assets.
func placeholderAvatar(i int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	fill := color.RGBA{R: uint8(40 * i), G: 120, B: uint8(255 - 30*i), A: 255}
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

type channel struct {
	user   *User
	tokens *TokenPair
	videos []*Video
}

func seedCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	videoPath := fs.String("video", "", "Path to a video file to upload (required)")
	count := fs.Int("count", 3, "Number of channels to create")
	perChannel := fs.Int("videos", 1, "Videos published per channel")
	fs.Parse(args)

	if *videoPath == "" {
		fmt.Println("Error: --video is required")
		fmt.Println("\nUsage: simulator seed --video=./sample.mp4 [--count=3] [--videos=1]")
		os.Exit(1)
	}
	if *count < 1 || *perChannel < 1 {
		fmt.Println("Error: --count and --videos must be at least 1")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Println("=== Simulator: Seed ===")
	fmt.Println()

	// 1. Channels and their uploads
	channels := make([]*channel, 0, *count)
	for i := 0; i < *count; i++ {
		fmt.Printf("  [%d/%d] registering channel... ", i+1, *count)
		user, tokens, err := client.RegisterUser(fmt.Sprintf("Channel%d", i+1), placeholderAvatar(i))
		if err != nil {
			fmt.Printf("FAILED\n  Error: %v\n", err)
			os.Exit(1)
		}
		ch := &channel{user: user, tokens: tokens}

		for v := 0; v < *perChannel; v++ {
			video, err := client.PublishVideo(tokens.AccessToken, fmt.Sprintf("%s clip %d", user.Username, v+1), *videoPath)
			if err != nil {
				fmt.Printf("FAILED\n  Error: %v\n", err)
				os.Exit(1)
			}
			ch.videos = append(ch.videos, video)
		}
		channels = append(channels, ch)
		fmt.Printf("OK (%s, %d videos)\n", user.Username, len(ch.videos))
	}

	// 2. Everyone follows the previous channel, watches its videos and files them in a playlist
	fmt.Println()
	fmt.Println("Wiring subscriptions, playlists and tweets:")
	for i, ch := range channels {
		target := channels[(i+len(channels)-1)%len(channels)]
		if target != ch {
			if err := client.Subscribe(ch.tokens.AccessToken, target.user.ID); err != nil {
				fmt.Printf("Warning: %s could not subscribe to %s: %v\n", ch.user.Username, target.user.Username, err)
			}
		}

		playlist, err := client.CreatePlaylist(ch.tokens.AccessToken, "Favourites of "+ch.user.FullName)
		if err != nil {
			fmt.Printf("Warning: playlist for %s failed: %v\n", ch.user.Username, err)
			continue
		}
		for _, v := range target.videos {
			if _, err := client.WatchVideo(ch.tokens.AccessToken, v.ID); err != nil {
				fmt.Printf("Warning: %s could not watch %s: %v\n", ch.user.Username, v.ID, err)
			}
			if err := client.AddToPlaylist(ch.tokens.AccessToken, playlist.ID, v.ID); err != nil {
				fmt.Printf("Warning: add %s to playlist failed: %v\n", v.ID, err)
			}
		}

		if err := client.Tweet(ch.tokens.AccessToken, "Hello from "+ch.user.FullName); err != nil {
			fmt.Printf("Warning: tweet for %s failed: %v\n", ch.user.Username, err)
		}
		fmt.Printf("  %s -> %s\n", ch.user.Username, target.user.Username)
	}

	// Print summary
	fmt.Println()
	fmt.Println("=========================================")
	fmt.Println("  SEED COMPLETE")
	fmt.Println("=========================================")
	fmt.Println()
	for _, ch := range channels {
		profile, err := client.Channel(ch.tokens.AccessToken, ch.user.Username)
		if err != nil {
			fmt.Printf("  %-20s (profile unavailable: %v)\n", ch.user.Username, err)
			continue
		}
		fmt.Printf("  %-20s subscribers=%d subscribed=%d\n", profile.Username, profile.SubscribersCount, profile.SubscribedToCount)
	}
	fmt.Println()
	fmt.Println("  Every seeded account uses password: testpassword123")
	fmt.Println()
}

func sessionsCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("sessions", flag.ExitOnError)
	rotations := fs.Int("rotations", 3, "Number of refresh rotations to perform")
	fs.Parse(args)

	client := NewAPIClient(apiURL)

	fmt.Print("Registering session user... ")
	user, tokens, err := client.RegisterUser("Session", placeholderAvatar(0))
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK (%s)\n", user.Username)

	for i := 0; i < *rotations; i++ {
		previous := tokens.RefreshToken
		next, err := client.Refresh(previous)
		if err != nil {
			fmt.Printf("  [%d/%d] rotation FAILED: %v\n", i+1, *rotations, err)
			os.Exit(1)
		}

		if _, err := client.Refresh(previous); err == nil {
			fmt.Printf("  [%d/%d] reused refresh token was accepted\n", i+1, *rotations)
			os.Exit(1)
		}
		tokens = next
		fmt.Printf("  [%d/%d] rotated, reuse rejected\n", i+1, *rotations)
	}

	fmt.Println()
	fmt.Println("Session rotation behaves as expected.")
}
