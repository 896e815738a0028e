package config_test

import (
	"fmt"

	"github.com/ajitpratap0/stockpile/pkg/config"
)

func ExampleDefault() {
	cfg := config.Default()
	for _, p := range cfg.Pools {
		fmt.Printf("%s: initial=%d base=%d growth=%s\n", p.Name, p.InitialSize, p.BaseSize, p.Growth)
	}
	fmt.Println(cfg.Validate() == nil)
	// Output:
	// widgets: initial=0 base=3 growth=double
	// true
}

func ExampleConfig_Validate() {
	cfg := config.Default()
	cfg.Pools = append(cfg.Pools, config.PoolConfig{Name: "widgets", Growth: "lean"})

	if err := cfg.Validate(); err != nil {
		fmt.Println("validation failed")
	}
	// Output: validation failed
}
