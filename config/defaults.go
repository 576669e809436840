package config

var DefaultConfig string = `
[logging]
console-level = 5
file-level    = -1

[parser]
# seconds east of UTC applied to "now" and to every resolved wall clock
tz-offset = 0
# text: strict word-boundary rules; field: the whole input is a date
mode = "text"

[output]
describe    = false
recur-count = 5
`
