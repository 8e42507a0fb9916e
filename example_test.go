package cfg_test

import (
	"fmt"

	"github.com/cfg-lang/go-cfg"
)

func ExampleParse() {
	c, err := cfg.Parse([]byte(`
		// Service settings.
		name = "api";
		port = 8080;
		limits = {
			rps = 100;
			burst = 20;
		};
		ports = [80, 443];
	`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	g := c.Global()
	fmt.Println(g.String("name"))
	fmt.Println(g.Int("port"))
	fmt.Println(g.Struct("limits").Int("rps"))
	fmt.Println(g.Array("ports").IntAt(1))

	// Output:
	// api
	// 8080
	// 100
	// 443
}

func ExampleVariable_LookupInt() {
	c, err := cfg.Parse([]byte(`port = 8080;`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	port, err := c.Global().LookupInt("port")
	fmt.Println(port, err)

	_, err = c.Global().LookupInt("host")
	fmt.Println(err)

	// Output:
	// 8080 <nil>
	// variable `host` not found
}

func ExampleUnmarshal() {
	type Conf struct {
		Name  string `cfg:"name"`
		Port  int    `cfg:"port"`
		Debug bool   `cfg:"debug"`
	}

	var conf Conf
	err := cfg.Unmarshal([]byte(`
		name = "api";
		port = 8080;
		debug = true;
	`), &conf)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%+v\n", conf)

	// Output:
	// {Name:api Port:8080 Debug:true}
}

func ExampleMarshal() {
	data, err := cfg.Marshal(map[string]any{
		"name":  "api",
		"port":  8080,
		"ports": []int{80, 443},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(string(data))

	// Output:
	// name = "api";
	// port = 8080;
	// ports = [80, 443];
}
