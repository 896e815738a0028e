package main

import (
	"fmt"

	"github.com/spf13/cobra"

	stockjson "github.com/ajitpratap0/stockpile/pkg/json"
	"github.com/ajitpratap0/stockpile/pkg/logger"
	"github.com/ajitpratap0/stockpile/pkg/pool"
	"github.com/ajitpratap0/stockpile/pkg/scene"
)

// sceneSnapshot is what the scene command prints after each phase.
type sceneSnapshot struct {
	Phase             string     `json:"phase"`
	ContainerChildren int        `json:"container_children"`
	ParentChildren    int        `json:"parent_children"`
	Stats             pool.Stats `json:"stats"`
}

func newSceneCommand(_ *app) *cobra.Command {
	var (
		count    int
		baseSize int
		growth   string
	)

	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Attach pooled nodes to a scene parent and hand them back",
		Long: `Build a node pool from a small prefab, attach --count instances to a parent
node, return them to the pool and print the node counts after each step.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("--count cannot be negative")
			}
			mode, err := pool.ParseGrowthMode(growth)
			if err != nil {
				return err
			}
			return runScene(cmd, count, baseSize, mode)
		},
	}

	cmd.Flags().IntVar(&count, "count", 25, "Nodes to attach")
	cmd.Flags().IntVar(&baseSize, "base-size", scene.DefaultBaseSize, "Instances created when the pool wakes, and the double growth step")
	cmd.Flags().StringVar(&growth, "growth", "double", "Growth mode (lean, double)")
	return cmd
}

func runScene(cmd *cobra.Command, count, baseSize int, mode pool.GrowthMode) error {
	prefab := scene.NewNode("Bullet")
	scene.NewNode("Trail").SetParent(prefab)

	world := scene.NewNode("World")
	world.Layer = 8

	container := scene.NewPoolContainer("Bullet Pool", prefab)
	container.BaseSize = baseSize
	container.Growth = mode
	container.Logger = logger.Get()
	if err := container.Awake(); err != nil {
		return err
	}
	np := container.Pool()

	snap := func(phase string) sceneSnapshot {
		return sceneSnapshot{
			Phase:             phase,
			ContainerChildren: len(container.Node.Children()),
			ParentChildren:    len(world.Children()),
			Stats:             np.Stats(),
		}
	}

	snapshots := []sceneSnapshot{snap("awake")}

	attached := make([]*scene.Node, 0, count)
	for i := 0; i < count; i++ {
		n, err := np.AttachTo(world)
		if err != nil {
			return err
		}
		n.SetActive(true)
		attached = append(attached, n)
	}
	snapshots = append(snapshots, snap("attached"))

	for _, n := range attached {
		np.Return(n)
	}
	snapshots = append(snapshots, snap("returned"))

	return stockjson.Encode(cmd.OutOrStdout(), snapshots)
}
