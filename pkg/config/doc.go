/*
Package config manages configuration parsing and validation for doctick.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |   HCL   |   |  JSON   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Loads the walk root, include/ignore globs, and doc comment marker
- Validates configuration values and fills defaults
- Supports multiple config formats behind one Load entrypoint

🔄 Flow:
1. Reads configuration from file (a missing file means defaults)
2. Picks a parser by file extension
3. Fills defaults for unset fields
4. Validates the result before any file is touched

🤝 Interfaces:
- Parser: Format-specific parsing, registered at init time

🔍 Example:

	cfg, err := config.Load(ctx, ".doctick.yaml")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
*/
package config
