package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()

	g := newGame()

	if *recordDefaultPGO {
		stop, err := startDefaultPGORecording("default.pgo")
		if err != nil {
			log.Fatalf("Starting PGO recording failed: %v", err)
		}
		g.enableAutoWalk(pgoRecordDuration)
		time.AfterFunc(pgoRecordDuration, stop)
		log.Printf("Recording default.pgo for %s while auto-painting", pgoRecordDuration)
	}

	ebiten.SetWindowSize(w*windowScale, h*windowScale)
	ebiten.SetWindowTitle("Chroma Canvas")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
}
