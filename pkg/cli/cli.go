package cli

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/Fepozopo/teleafmm/pkg/stdimg"
)

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  /  - select and apply command")
	fmt.Println("  m  - paint a mask from a seed pixel")
	fmt.Println("  i  - inpaint the current mask")
	fmt.Println("  v  - visualize the inpainter's T field")
	fmt.Println("  o  - open another image at runtime")
	fmt.Println("  s  - save current image")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

// printIdentifyInfo prints the image's format/dimensions and whether the
// loader had to correct its EXIF orientation.
func printIdentifyInfo(img image.Image, path string, autoOriented bool) {
	info, err := GetImageInfoImage(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "identify: %v\n", err)
		return
	}
	fmt.Println(info)
	if path != "" {
		fmt.Printf("Path: %s\n", path)
	}
	if autoOriented {
		fmt.Println("Orientation: corrected from EXIF on load")
	}
}

func RunCLI() {
	var inputImagePath string
	if len(os.Args) >= 2 {
		inputImagePath = os.Args[1]
	} else {
		inputImagePath = ""
	}

	// Use stdimg command metadata as the canonical source
	storeStd := NewMetaStoreFromStdimg(stdimg.Commands)

	var cur image.Image
	// Track the path of the currently loaded image so identify can report it.
	var currentImagePath string
	var currentFormat string
	var currentAutoOriented bool
	if inputImagePath != "" {
		img, format, autoOriented, err := LoadImage(inputImagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", inputImagePath, err)
			os.Exit(1)
		}
		cur = img
		currentImagePath = inputImagePath
		currentFormat = format
		currentAutoOriented = autoOriented
		// Try to show an initial preview in compatible terminals.
		// Ignore errors here so preview remains optional.
		_ = PreviewImage(cur, currentFormat)
		if info, ierr := GetImageInfoImage(cur); ierr == nil {
			fmt.Println(info)
		}
	}

	fmt.Println("Terminal Image Editor")
	usage()

	// runCommand prompts for commandName's arguments using stdimg metadata,
	// applies it, and refreshes the preview — shared by the generic '/'
	// selector and the direct 'm'/'i'/'v' shortcuts below.
	runCommand := func(commandName string) {
		c, ok := storeStd.byName[commandName]
		if !ok {
			fmt.Printf("unknown command: %s\n", commandName)
			return
		}

		tooltip, _, _ := storeStd.GetCommandHelp(commandName)
		fmt.Println("\n" + tooltip + "\n")
		rawArgs := make([]string, len(c.Args))
		for i, p := range c.Args {
			typeLabel := p.Type
			if p.Type == "enum" && p.Description != "" {
				typeLabel = fmt.Sprintf("enum(%s)", p.Description)
			}
			prompt := fmt.Sprintf("%s (%s): ", p.Name, typeLabel)

			lowerName := strings.ToLower(p.Name)
			lowerHint := strings.ToLower(p.Description)
			var val string
			var perr error
			if strings.Contains(lowerName, "path") || strings.Contains(lowerName, "file") || strings.Contains(lowerHint, "path") || strings.Contains(lowerHint, "file") {
				prompt = fmt.Sprintf("%s (%s) [enter image path, url, or enter '/' to use fzf]: ", p.Name, typeLabel)
				val, perr = PromptLineWithFzf(prompt)
				if perr != nil {
					fmt.Fprintf(os.Stderr, "input error: %v\n", perr)
					val = ""
				}
			} else {
				val, perr = PromptLine(prompt)
				if perr != nil {
					fmt.Fprintf(os.Stderr, "input error: %v\n", perr)
					val = ""
				}
			}
			rawArgs[i] = val
		}

		normArgs, err := NormalizeArgsFromStd(storeStd, commandName, rawArgs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "input validation error: %v\n", err)
			fmt.Println("aborting command due to input errors")
			return
		}

		newImg, err := stdimg.ApplyCommandStdlib(cur, commandName, normArgs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "apply command error: %v\n", err)
			return
		}
		if newImg != nil {
			cur = newImg
		}
		fmt.Printf("Applied %s\n", commandName)
		_ = PreviewImage(cur, currentFormat)
		if commandName == "identify" {
			printIdentifyInfo(cur, currentImagePath, currentAutoOriented)
			return
		}
		if info, ierr := GetImageInfoImage(cur); ierr == nil {
			fmt.Println(info)
		}
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		r, _, err := reader.ReadRune()
		if err != nil {
			fmt.Fprintf(os.Stderr, "read input error: %v\n", err)
			continue
		}

		switch r {
		case '/':
			if cur == nil {
				fmt.Println("No image loaded. Press 'o' to open an image first, or provide an image path as the first argument.")
				continue
			}
			var commandName string
			name, err := SelectCommandWithFzfStd(stdimg.Commands)
			if err != nil || name == "" {
				// fzf unavailable or returned nothing — fall back to a textual selection list using stdimg.Commands.
				fmt.Println("Command selection (fallback):")
				for i, c := range stdimg.Commands {
					fmt.Printf("  %d) %s - %s\n", i+1, c.Name, c.Description)
				}
				selection, _ := PromptLine("Enter number or command name (leave empty to cancel): ")
				if selection == "" {
					fmt.Println("selection cancelled")
					continue
				}
				if idx, perr := strconv.Atoi(selection); perr == nil {
					if idx < 1 || idx > len(stdimg.Commands) {
						fmt.Println("invalid selection")
						continue
					}
					commandName = stdimg.Commands[idx-1].Name
				} else {
					selLower := strings.ToLower(selection)
					found := ""
					for _, c := range stdimg.Commands {
						if strings.ToLower(c.Name) == selLower {
							found = c.Name
							break
						}
					}
					if found == "" {
						matches := []string{}
						for _, c := range stdimg.Commands {
							if strings.HasPrefix(strings.ToLower(c.Name), selLower) {
								matches = append(matches, c.Name)
							}
						}
						if len(matches) == 1 {
							found = matches[0]
						} else if len(matches) > 1 {
							fmt.Println("ambiguous selection, candidates:")
							for _, m := range matches {
								fmt.Println("  " + m)
							}
							continue
						}
					}
					if found == "" {
						fmt.Printf("unknown command: %s\n", selection)
						continue
					}
					commandName = found
				}
			} else {
				commandName = name
			}

			runCommand(commandName)
			continue

		case 'm':
			if cur == nil {
				fmt.Println("No image loaded. Press 'o' to open an image first, or provide an image path as the first argument.")
				continue
			}
			runCommand("paintmask")
			continue

		case 'i':
			if cur == nil {
				fmt.Println("No image loaded. Press 'o' to open an image first, or provide an image path as the first argument.")
				continue
			}
			runCommand("inpaint")
			continue

		case 'v':
			if cur == nil {
				fmt.Println("No image loaded. Press 'o' to open an image first, or provide an image path as the first argument.")
				continue
			}
			runCommand("visualize")
			continue

		case 's':
			out, _ := PromptLine("Enter output filename: ")
			if out == "" {
				fmt.Println("no filename provided")
				continue
			}
			if err := SaveImage(out, cur); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write image: %v\n", err)
				continue
			}
			fmt.Printf("Saved to %s\n", out)

		case 'o':
			selected, selErr := SelectFileWithFzf(".")
			var newPath string
			if selErr != nil || selected == "" {
				newPath, _ = PromptLine("Enter path to image to open (leave empty to cancel): ")
				if newPath == "" {
					fmt.Println("open cancelled")
					continue
				}
			} else {
				newPath = selected
			}

			img, format, autoOriented, err := LoadImage(newPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", newPath, err)
				continue
			}
			cur = img
			currentImagePath = newPath
			currentFormat = format
			currentAutoOriented = autoOriented
			fmt.Printf("Opened %s\n", newPath)
			_ = PreviewImage(cur, currentFormat)
			if info, ierr := GetImageInfoImage(cur); ierr == nil {
				fmt.Println(info)
			}
			continue

		case 'u':
			err := CheckForUpdates()
			if err != nil {
				fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
			}
			continue

		case 'h':
			usage()
			continue

		case 'q':
			fmt.Println("Exiting...")
			return

		default:
			// ignore other keys
		}
	}
}
