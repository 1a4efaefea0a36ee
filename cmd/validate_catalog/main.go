// validate_catalog 物种目录校验工具
//
// 解析并校验一个或多个物种目录 YAML 文件，打印每个物种的属性和掉落概率。
// 不给出文件时校验内置目录。
//
// 用法：
//
//	go run ./cmd/validate_catalog data/plants.yaml my_catalog.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/decker502/forest/pkg/config"
	"github.com/decker502/forest/pkg/game"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func main() {
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{""}
	}

	failed := 0
	for _, path := range paths {
		if err := validate(os.Stdout, path); err != nil {
			failed++
			fmt.Fprintln(os.Stdout, failStyle.Render("FAIL ")+displayName(path)+": "+err.Error())
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// validate 加载一个目录并打印摘要
// path 为空时校验内置目录
func validate(w io.Writer, path string) error {
	var (
		cfg *config.CatalogConfig
		err error
	)
	if path == "" {
		cfg = config.DefaultCatalogConfig()
		err = config.ValidateCatalogConfig(cfg)
	} else {
		cfg, err = config.LoadSpeciesConfig(path)
	}
	if err != nil {
		return err
	}

	catalog, err := game.NewPlantCatalog(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, okStyle.Render("OK   ")+displayName(path))
	fmt.Fprintln(w, summary(catalog))
	return nil
}

func displayName(path string) string {
	if path == "" {
		return config.CatalogSourceBuiltin
	}
	return path
}

// summary 返回物种属性表
func summary(catalog *game.PlantCatalog) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Glyph", "Name", "Class", "Max age", "Growth", "Points", "Projected", "Drops")

	for _, sp := range catalog.All() {
		t.Row(
			string(sp.Glyph),
			sp.Name,
			string(sp.Class),
			fmt.Sprint(sp.MaxAge),
			fmt.Sprint(sp.GrowthPerTurn),
			fmt.Sprintf("%g", sp.PointsPerSize),
			fmt.Sprintf("%g", sp.ProjectedScore()),
			dropSummary(catalog, sp),
		)
	}
	return t.Render()
}

// dropSummary 返回掉落表的概率描述，如 "50% Grass+Grass; 50% Grass+Tall Grass"
func dropSummary(catalog *game.PlantCatalog, sp *game.PlantSpecies) string {
	total := sp.TotalDropWeight()
	if len(sp.Drops) == 0 || !(total > 0) {
		return "-"
	}

	parts := make([]string, 0, len(sp.Drops))
	for _, d := range sp.Drops {
		names := make([]string, 0, len(d.Produces))
		for _, id := range d.Produces {
			produced, err := catalog.Lookup(id)
			if err != nil {
				names = append(names, "?")
				continue
			}
			names = append(names, produced.Name)
		}
		parts = append(parts, fmt.Sprintf("%.0f%% %s", 100*d.Weight/total, strings.Join(names, "+")))
	}
	return strings.Join(parts, "; ")
}
