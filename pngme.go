package main

import (
	"flag"
	"io/ioutil"
	"log"
	"os"

	"lukechampine.com/flagg"
)

const (
	rootUsage = `Usage: pngme [-v] [-progress] [command] [args]

Commands:
    pngme encode [-encrypt] <file> <chunk_type> <message> [output]
    pngme decode [-decrypt] [-all] <file> <chunk_type>
    pngme remove <file> <chunk_type>
    pngme print [-type chunk_type] <file>
`
	encodeUsage = `Usage:
    pngme encode [-encrypt] <file> <chunk_type> <message> [output]
      Hide message in a new chunk of type chunk_type. The file is
      overwritten unless output is given, which must not exist.
`
	decodeUsage = `Usage:
    pngme decode [-decrypt] [-all] <file> <chunk_type>
      Print the message stored in the first chunk of type chunk_type.
`
	removeUsage = `Usage:
    pngme remove <file> <chunk_type>
      Remove the first chunk of type chunk_type from file.
`
	printUsage = `Usage:
    pngme print [-type chunk_type] <file>
      List the chunks of file.
`
)

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func usageError(fs *flag.FlagSet) {
	fs.Usage()
	os.Exit(2)
}

func main() {
	log.SetFlags(0)

	flagg.Root.Usage = flagg.SimpleUsage(flagg.Root, rootUsage)
	verbose := flagg.Root.Bool("v", false, "log every step to stderr")
	progress := flagg.Root.Bool("progress", false, "show progress bars for file reads and writes")

	encodeCmd := flagg.New("encode", encodeUsage)
	encrypt := encodeCmd.Bool("encrypt", false, "encrypt the message with a password")
	decodeCmd := flagg.New("decode", decodeUsage)
	decrypt := decodeCmd.Bool("decrypt", false, "decrypt the message with a password")
	all := decodeCmd.Bool("all", false, "print every chunk of the type")
	removeCmd := flagg.New("remove", removeUsage)
	printCmd := flagg.New("print", printUsage)
	printType := printCmd.String("type", "", "only list chunks of this type")

	cmd := flagg.Parse(flagg.Tree{
		Cmd: flagg.Root,
		Sub: []flagg.Tree{
			{Cmd: encodeCmd},
			{Cmd: decodeCmd},
			{Cmd: removeCmd},
			{Cmd: printCmd},
		},
	})

	runner := &Runner{
		Stdout:   os.Stdout,
		Log:      log.New(ioutil.Discard, "", 0),
		Password: terminalPassword,
	}
	if *verbose {
		runner.Log.SetOutput(os.Stderr)
	}
	if *progress {
		runner.Progress = os.Stderr
	}

	args := cmd.Args()
	switch cmd {
	case encodeCmd:
		if len(args) != 3 && len(args) != 4 {
			usageError(encodeCmd)
		}
		opts := EncodeOptions{
			Path:      args[0],
			ChunkType: args[1],
			Message:   args[2],
			Encrypt:   *encrypt,
		}
		if len(args) == 4 {
			opts.Output = args[3]
		}
		check(runner.Encode(opts))
	case decodeCmd:
		if len(args) != 2 {
			usageError(decodeCmd)
		}
		check(runner.Decode(DecodeOptions{
			Path:      args[0],
			ChunkType: args[1],
			All:       *all,
			Decrypt:   *decrypt,
		}))
	case removeCmd:
		if len(args) != 2 {
			usageError(removeCmd)
		}
		check(runner.Remove(RemoveOptions{Path: args[0], ChunkType: args[1]}))
	case printCmd:
		if len(args) != 1 {
			usageError(printCmd)
		}
		check(runner.Print(PrintOptions{Path: args[0], ChunkType: *printType}))
	default:
		usageError(flagg.Root)
	}
}
