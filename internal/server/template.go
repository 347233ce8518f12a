package server

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>IDX Signal {{.Ticker}}</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 1.5rem; background: #111; color: #ddd; }
  h1 { font-size: 1.2rem; }
  .panels { display: flex; flex-wrap: wrap; gap: 1rem; align-items: flex-start; }
  .panel { background: #1b1b1f; border: 1px solid #333; border-radius: 6px; padding: .8rem 1rem; min-width: 240px; }
  .panel h2 { font-size: .95rem; margin: 0 0 .5rem 0; }
  .badge { display: inline-block; padding: .1rem .5rem; border-radius: 4px; background: #2c4; color: #111; font-size: .8rem; }
  .badge.err { background: #c43; color: #fff; }
  table { border-collapse: collapse; }
  td, th { padding: .15rem .6rem; text-align: left; font-size: .85rem; }
  th { color: #8af; }
  .notes { font-size: .8rem; color: #9a9; }
  .footer { font-size: .8rem; color: #aa8; margin-top: .4rem; }
  .error { color: #e66; font-size: .85rem; }
  a { color: #8af; text-decoration: none; }
  img.chart { max-width: 100%; border: 1px solid #333; border-radius: 6px; }
  form.inline { display: inline; }
  input[type=text] { background: #222; color: #ddd; border: 1px solid #444; padding: .2rem .4rem; }
  button { background: #345; color: #ddd; border: 1px solid #456; padding: .2rem .6rem; cursor: pointer; }
</style>
</head>
<body>
<h1>IDX Signal Dashboard</h1>

<form method="get" action="/">
  <input type="text" name="ticker" value="{{.Ticker}}" placeholder="Ticker, e.g. BBCA">
  <button type="submit">Load</button>
</form>
<form class="inline" method="post" action="/watchlist/add">
  <input type="hidden" name="ticker" value="{{.Ticker}}">
  <button type="submit">Watch {{.Ticker}}</button>
</form>
<a href="/?ticker={{.Ticker}}&refresh=1">Refresh radar</a>

<div class="panels">

<div class="panel">
  <h2>{{.Regime.Title}} <span class="badge{{if .Regime.Err}} err{{end}}">{{.Regime.Badge}}</span></h2>
  <table>{{range .Regime.Rows}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>{{end}}</table>
  {{range .Regime.Notes}}<div class="notes">{{.}}</div>{{end}}
  {{if .Regime.Footer}}<div class="{{if .Regime.Err}}error{{else}}footer{{end}}">{{.Regime.Footer}}</div>{{end}}
</div>

<div class="panel">
  <h2>{{.Signal.Title}} <span class="badge{{if .Signal.Err}} err{{end}}">{{.Signal.Badge}}</span></h2>
  <table>{{range .Signal.Rows}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>{{end}}</table>
  {{range .Signal.Notes}}<div class="notes">{{.}}</div>{{end}}
  {{if .Signal.Footer}}<div class="{{if .Signal.Err}}error{{else}}footer{{end}}">{{.Signal.Footer}}</div>{{end}}
</div>

<div class="panel">
  <h2>Chart</h2>
  {{if .ChartOK}}<img class="chart" src="/chart.png?ticker={{.Ticker}}" alt="{{.Ticker}} chart">
  {{else if .ChartErr}}<div class="error">{{.ChartErr}}</div>
  {{else}}<div class="error">chart unavailable</div>{{end}}
</div>

<div class="panel">
  <h2>{{.Radar.Title}}{{if .RadarAsOf}} <span class="notes">as of {{.RadarAsOf}}</span>{{end}}</h2>
  {{if .RadarErr}}<div class="error">{{.RadarErr}}</div>{{end}}
  {{if .RadarOK}}
  <table>
    <tr>{{range .Radar.Headers}}<th>{{.}}</th>{{end}}</tr>
    {{range .Radar.Rows}}<tr>{{range $i, $c := .}}<td>{{if eq $i 0}}<a href="/?ticker={{$c}}">{{$c}}</a>{{else}}{{$c}}{{end}}</td>{{end}}</tr>{{end}}
  </table>
  {{if not .Radar.Rows}}<div class="notes">{{.Radar.Empty}}</div>{{end}}
  {{end}}
</div>

<div class="panel">
  <h2>Watchlist</h2>
  {{if .Watchlist}}
  <table>
    {{range .Watchlist}}<tr>
      <td><a href="/?ticker={{.Ticker}}">{{.Display}}</a></td>
      <td><form class="inline" method="post" action="/watchlist/remove">
        <input type="hidden" name="ticker" value="{{.Ticker}}">
        <button type="submit">x</button>
      </form></td>
    </tr>{{end}}
  </table>
  {{else}}<div class="notes">watchlist is empty</div>{{end}}
</div>

</div>
</body>
</html>
`
