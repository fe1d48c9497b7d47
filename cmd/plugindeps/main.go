// Command plugindeps resolves plugin dependency graphs against a scripted
// artifact universe, for debugging resolution policy decisions offline.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/forgebuild/plugindeps"
	"github.com/forgebuild/plugindeps/artifact"
	"github.com/forgebuild/plugindeps/engine"
	"github.com/forgebuild/plugindeps/graph"
)

var (
	universePath  string
	verboseFlag   bool
	coreExtension bool
)

var rootCmd = &cobra.Command{
	Use:   "plugindeps",
	Short: "Resolve build plugin dependency graphs",
	Long: `Resolve build plugin dependency graphs against a YAML universe manifest.

The universe manifest scripts an in-memory dependency engine: artifact
descriptors, declared dependencies and file locations. Resolution applies
the same compatibility policy the host applies, including the classic
scope handling for plugins requiring a host older than version 3.`,
	SilenceUsage: true,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <group:artifact:version>",
	Short: "Resolve a plugin's dependency graph and print the tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := strings.Split(args[0], ":")
		if len(parts) != 3 {
			return fmt.Errorf("plugin coordinate must be group:artifact:version, got %q", args[0])
		}

		mem, err := engine.LoadUniverse(universePath)
		if err != nil {
			return err
		}

		level := log.InfoLevel
		if verboseFlag {
			level = log.DebugLevel
		}
		handler := log.NewWithOptions(os.Stderr, log.Options{
			Level:           level,
			ReportTimestamp: false,
		})
		resolver, err := plugindeps.New(mem, plugindeps.WithLogger(slog.New(handler)))
		if err != nil {
			return err
		}

		session := engine.NewSession()
		plugin := plugindeps.Plugin{
			GroupID:    parts[0],
			ArtifactID: parts[1],
			Version:    parts[2],
		}

		// The plugin's declared dependencies live in its descriptor.
		desc, err := mem.ReadDescriptor(cmd.Context(), session, engine.DescriptorRequest{
			Artifact: artifact.New(plugin.GroupID, plugin.ArtifactID, plugin.Version),
			Context:  "cli",
		})
		if err != nil {
			return err
		}
		for _, d := range desc.Dependencies {
			plugin.Dependencies = append(plugin.Dependencies, toDeclaration(d))
		}

		var node *graph.Node
		if coreExtension {
			node, err = resolver.ResolveCoreExtensionDependencies(cmd.Context(), plugin, nil, nil, session)
		} else {
			node, err = resolver.ResolveDependencies(cmd.Context(), plugin, nil, nil, nil, session)
		}
		if err != nil {
			return err
		}

		node.Accept(graph.NewDumper(func(line string) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}))
		return nil
	},
}

func toDeclaration(d graph.Dependency) plugindeps.Dependency {
	decl := plugindeps.Dependency{
		GroupID:    d.Artifact.GroupID,
		ArtifactID: d.Artifact.ArtifactID,
		Version:    d.Artifact.Version,
		Type:       d.Artifact.Type,
		Classifier: d.Artifact.Classifier,
		Scope:      d.Scope,
		Optional:   d.Optional,
	}
	for _, e := range d.Exclusions {
		decl.Exclusions = append(decl.Exclusions, plugindeps.Exclusion{
			GroupID:    e.GroupID,
			ArtifactID: e.ArtifactID,
		})
	}
	return decl
}

func init() {
	resolveCmd.Flags().StringVarP(&universePath, "universe", "u", "universe.yaml", "path to the universe manifest")
	resolveCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "log policy decisions and the collected graph")
	resolveCmd.Flags().BoolVar(&coreExtension, "core-extension", false, "resolve as a core extension (no compatibility injection)")
	rootCmd.AddCommand(resolveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
