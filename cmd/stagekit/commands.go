package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stagekit/behavior"
	"github.com/hupe1980/stagekit/config"
	"github.com/hupe1980/stagekit/game"
	"github.com/hupe1980/stagekit/module"
	"github.com/hupe1980/stagekit/modules/scenes"
	"github.com/hupe1980/stagekit/node"
)

// catalog maps configuration names to the subsystems this binary ships.
var catalog = map[string]*module.Definition{
	scenes.Definition.Name(): scenes.Definition,
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "stagekit",
		Short:         "Behavior runtime for scene graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")

	root.AddCommand(newRunCmd(&configPath), newModulesCmd())
	return root
}

func loadConfig(path string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if err := config.ParseEnv(&cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Build the application root and play a headless demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runDemo(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the subsystems that can be configured",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			names := make([]string, 0, len(catalog))
			for name := range catalog {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				def := catalog[name]
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t(family %s)\n", name, mustBase(def).Name())
			}
		},
	}
}

func mustBase(def *module.Definition) *module.Definition {
	base, err := module.ResolveBase(def)
	if err != nil {
		return def
	}
	return base
}

// tracer prints the lifecycles it receives.
type tracer struct {
	behavior.Base
	out   io.Writer
	label string
}

func newTracer(out io.Writer, label string) *tracer {
	return &tracer{out: out, label: label}
}

func (t *tracer) ExtendModules() behavior.Extension {
	return behavior.ExtendOnly(game.Name, scenes.Definition)
}

func (t *tracer) printf(format string, args ...any) {
	fmt.Fprintf(t.out, "%-8s "+format+"\n", append([]any{t.label}, args...)...)
}

func (t *tracer) OnActive()                        { t.printf("active") }
func (t *tracer) OnDestroy()                       { t.printf("destroyed") }
func (t *tracer) OnNodeAdded(n *node.Node)         { t.printf("added (on stage: %v)", n.OnStage()) }
func (t *tracer) OnNodeRemoved(n *node.Node)       { t.printf("removed") }
func (t *tracer) OnChildNodeAdded(p, c *node.Node) { t.printf("child %s added", c.Name()) }
func (t *tracer) OnSceneLoad(args ...any)          { t.printf("scene loaded %v", args) }
func (t *tracer) OnSceneOpen(scene *node.Node)     { t.printf("scene %s opened", scene.Name()) }
func (t *tracer) OnGameStart(g *game.Game)         { t.printf("game started") }
func (t *tracer) OnAfterMount(g *game.Game)        { t.printf("view mounted") }

// runDemo builds the root from cfg, mounts a headless view, populates the
// stage and moves a node in and out of it.
func runDemo(cfg config.Config, out, logOut io.Writer) error {
	reg := module.NewRegistry()
	if err := config.Apply(reg, cfg, catalog); err != nil {
		return err
	}
	g, err := game.New(func(o *game.Options) {
		o.Width = cfg.Width
		o.Height = cfg.Height
		o.Logger = cfg.Logger(logOut)
		o.Registry = reg
	})
	if err != nil {
		return err
	}
	defer game.Reset()

	world := node.New("world")
	world.Mount(newTracer(out, "world"))
	hero := node.New("hero")
	hero.Mount(newTracer(out, "hero"))
	if err := world.AddChild(hero); err != nil {
		return err
	}

	if err := g.MountView(game.NewHeadlessView()); err != nil {
		return err
	}

	if sm, ok := game.ModuleOf[*scenes.Manager](g); ok {
		scene := sm.Load(func() *node.Node {
			s := node.NewScene("level-1")
			s.Mount(newTracer(out, "level-1"))
			return s
		}, "level-1", cfg.Width, cfg.Height)
		if err := sm.Open(scene); err != nil {
			return err
		}
		if err := scene.AddChild(world); err != nil {
			return err
		}
	} else if err := g.Stage().AddChild(world); err != nil {
		return err
	}

	g.Start()

	if err := world.RemoveChild(hero); err != nil {
		return err
	}
	fmt.Fprintf(out, "hero on stage: %v\n", hero.OnStage())
	hero.Destroy()

	fmt.Fprintln(out, "tree:")
	printTree(out, g.Stage(), 1)
	return nil
}

func printTree(out io.Writer, n *node.Node, depth int) {
	fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), n)
	for _, c := range n.Children() {
		printTree(out, c, depth+1)
	}
}
