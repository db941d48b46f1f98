/*
Command line tooling around the physics extras contract: inspect and
validate the metadata embedded in exported scene files, or keep a watch on
the export directory and revalidate scenes as they change.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima-physics/assets"
	"github.com/spaghettifunk/anima-physics/config"
	"github.com/spaghettifunk/anima-physics/core"
	"github.com/spaghettifunk/anima-physics/material"
	"github.com/spaghettifunk/anima-physics/scene"
	"github.com/spaghettifunk/anima-physics/testbed"
)

const usage = `usage: anima-physics [-config file] <command>

commands:
  inspect <scene.gltf>      print the decoded physics metadata per node
  validate <scene.gltf...>  fail when any node's bag is broken
  watch                     revalidate scenes_dir whenever a file changes
  demo                      author, export and re-read a sample scene
`

func main() {
	cfgPath := flag.String("config", "physics.toml", "tool configuration file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		core.LogFatal(err.Error())
	}
	core.SetLogLevel(cfg.LogLevel)

	var lib *material.Library
	if cfg.MaterialLibrary != "" {
		lib, err = material.LoadLibrary(cfg.MaterialLibrary)
		if err != nil {
			core.LogFatal(err.Error())
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch args[0] {
	case "inspect":
		if len(args) != 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		if err := inspect(args[1]); err != nil {
			core.LogFatal(err.Error())
		}

	case "validate":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		broken := 0
		for _, path := range args[1:] {
			n, err := validate(path, cfg.Strict, lib)
			if err != nil {
				core.LogFatal(err.Error())
			}
			broken += n
		}
		if broken > 0 {
			core.LogError("%d broken node(s)", broken)
			os.Exit(1)
		}

	case "watch":
		if err := watch(cfg, lib); err != nil {
			core.LogFatal(err.Error())
		}

	case "demo":
		if err := testbed.Run(os.TempDir()); err != nil {
			core.LogFatal(err.Error())
		}

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func inspect(path string) error {
	_, nodes, err := scene.Load(path)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		switch {
		case n.Err != nil:
			core.LogWarn("node %d (%s): %v", n.Index, n.Name, n.Err)
		case !n.Participates():
			core.LogDebug("node %d (%s): no physics", n.Index, n.Name)
		default:
			core.LogInfo("node %d (%s): body=%s shape=%s trigger=%v layer=%d mask=%d material=%q",
				n.Index, n.Name, n.Extras.Body, n.Extras.Shape,
				n.Extras.IsTrigger, n.Extras.Layer, n.Extras.Mask, n.Extras.Material)
		}
	}
	return nil
}

func validate(path string, strict bool, lib *material.Library) (int, error) {
	_, nodes, err := scene.Load(path)
	if err != nil {
		return 0, err
	}
	broken := 0
	for _, n := range nodes {
		if n.Err != nil {
			if strict {
				return 0, fmt.Errorf("%s: %w", path, n.Err)
			}
			core.LogWarn("%s: %v", path, n.Err)
			broken++
			continue
		}
		if lib != nil && n.Participates() {
			if err := lib.Check(n.Extras.Material); err != nil {
				core.LogWarn("%s: node %d (%s): %v", path, n.Index, n.Name, err)
				broken++
			}
		}
	}
	return broken, nil
}

func watch(cfg config.Config, lib *material.Library) error {
	sw, err := assets.NewSceneWatcher(lib)
	if err != nil {
		return err
	}

	if err := sw.Initialize(cfg.ScenesDir); err != nil {
		return err
	}
	core.LogInfo("watching %s", cfg.ScenesDir)

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-sigCh

	sw.Close()
	return nil
}
