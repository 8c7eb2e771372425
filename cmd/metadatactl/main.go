package main

import (
	"github.com/fhuszti/medias-metadata-go/cmd/metadatactl/commands"
	"github.com/fhuszti/medias-metadata-go/internal/logger"
)

func main() {
	logger.Init("medias-metadata-ctl")

	commands.Execute()
}
