package export

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
	"github.com/murasaqi/anime-studio-positioning-map/src/positioning"
)

// WriteFile renders the map to a standalone HTML file.
func WriteFile(path string, store *dataset.Store, res *positioning.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteHTML(f, store, res); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	dataset.Infof("wrote %s (%d traces, %d views)", path, len(res.Series), len(res.Views))
	return nil
}

type viewButton struct {
	Key, Label string
}

type pageData struct {
	Title       string
	Buttons     []viewButton
	Total       int
	Traces      template.JS
	BaseLayout  template.JS
	Layouts     template.JS
	Visibility  template.JS
	Studios     template.JS
	PointMaps   template.JS
	LineGroups  template.JS
	LineIndices template.JS
	SizeAttrs   template.JS
	YLinear     template.JS
	HoverSep    template.JS
	AILabels    template.JS
	OwnLabels   template.JS
	InitialView string
}

// WriteHTML renders the complete artifact: plotly from its CDN, every trace
// and layout as JSON, and the interaction script. Everything else is inline;
// the output file works from disk with no server.
func WriteHTML(w io.Writer, store *dataset.Store, res *positioning.Result) error {
	defer dataset.TimeTrack(time.Now(), "map page render")
	layouts := make(map[string]map[string]any, len(res.Views))
	sizeAttrs := make(map[string]string, len(res.Views))
	yLinear := make(map[string][2]float64, len(res.Views))
	for key, cfg := range res.Views {
		layouts[string(key)] = buildLayout(cfg)
		sizeAttrs[string(key)] = sizeAttrKey(cfg.SizeAttr)
		yLinear[string(key)] = cfg.YLinearRange
	}

	buttons := make([]viewButton, len(positioning.ViewOrder))
	for i, key := range positioning.ViewOrder {
		buttons[i] = viewButton{Key: string(key), Label: res.Views[key].Button}
	}

	data := pageData{
		Title:       "Anime Studio Positioning Map",
		Buttons:     buttons,
		Total:       store.Len(),
		InitialView: string(positioning.ViewOrder[0]),
	}

	for _, field := range []struct {
		dst *template.JS
		src any
	}{
		{&data.Traces, buildTraces(res)},
		{&data.BaseLayout, initialLayout(res.Views[positioning.ViewOrder[0]])},
		{&data.Layouts, layouts},
		{&data.Visibility, buildVisibility(res)},
		{&data.Studios, embeddedStudios(store)},
		{&data.PointMaps, intKeyed(res.PointMaps)},
		{&data.LineGroups, intKeyed(res.LineGroups)},
		{&data.LineIndices, res.TrajectoryLines},
		{&data.SizeAttrs, sizeAttrs},
		{&data.YLinear, yLinear},
		{&data.HoverSep, htmlHoverSeparator()},
		{&data.AILabels, aiLevelDisplay},
		{&data.OwnLabels, ownershipDisplay},
	} {
		buf, err := json.Marshal(field.src)
		if err != nil {
			return fmt.Errorf("encode map data: %w", err)
		}
		*field.dst = template.JS(buf)
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render map page: %w", err)
	}
	return nil
}

// embeddedStudios copies the records for embedding, defaulting a missing
// founding size to the sentinel minimum. A missing current size stays null:
// the filter script's comparisons coerce it to zero, matching the engine's
// numeric clause.
func embeddedStudios(store *dataset.Store) []dataset.Entity {
	out := append([]dataset.Entity(nil), store.All()...)
	for i := range out {
		if out[i].SizeFounded == nil {
			v := dataset.SentinelSize
			out[i].SizeFounded = &v
		}
	}
	return out
}

// Badge labels for the entity list panel.
var (
	aiLevelDisplay = map[string]string{
		"none": "None", "experimental": "Experimental",
		"production": "Production", "core": "Core",
	}
	ownershipDisplay = map[string]string{
		"independent": "Independent", "subsidiary": "Subsidiary",
		"group_company": "Group",
	}
)

// initialLayout is the full (non-dotted) layout object the plot boots with.
func initialLayout(cfg positioning.ViewConfig) map[string]any {
	yType := "linear"
	if cfg.Y.Log {
		yType = "log"
	}
	xaxis := map[string]any{
		"title":      map[string]any{"text": cfg.X.Title},
		"range":      cfg.X.Range,
		"tickformat": cfg.X.TickFormat,
	}
	if cfg.X.DTick != 0 {
		xaxis["dtick"] = cfg.X.DTick
	}
	yaxis := map[string]any{
		"title":      map[string]any{"text": cfg.Y.Title},
		"type":       yType,
		"range":      cfg.Y.Range,
		"tickformat": cfg.Y.TickFormat,
	}
	if cfg.Y.DTick != 0 {
		yaxis["dtick"] = cfg.Y.DTick
	}
	return map[string]any{
		"title":        map[string]any{"text": cfg.Title, "font": map[string]any{"size": 16}},
		"xaxis":        xaxis,
		"yaxis":        yaxis,
		"hovermode":    "closest",
		"plot_bgcolor": "#FAFAFA",
		"height":       760,
		"legend": map[string]any{
			"orientation": "h", "yanchor": "bottom", "y": 1.01,
			"xanchor": "left", "x": 0,
		},
		"margin":      map[string]any{"l": 70, "r": 30, "t": 110, "b": 60},
		"annotations": buildAnnotations(cfg.Annotations),
	}
}

var pageTemplate = template.Must(template.New("map").Parse(page))

const page = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.32.0.min.js"></script>
<style>
  body { margin: 0; font-family: "Helvetica Neue", Arial, sans-serif; }
  .view-bar, .controls-bar, .filter-bar {
    display: flex; align-items: center; gap: 6px; flex-wrap: wrap;
    padding: 6px 10px; border-bottom: 1px solid #ddd; background: #fff;
    font-size: 12px;
  }
  .view-bar button {
    padding: 4px 10px; border: 1px solid #ccc; border-radius: 4px;
    background: #f5f5f5; cursor: pointer; font-size: 12px;
  }
  .view-bar button:hover { background: #e8e8e8; }
  .view-bar button.active { background: #3498DB; color: white; border-color: #2980B9; }
  .filter-bar input[type="number"] { width: 60px; }
  .filter-bar input[type="text"] { width: 130px; }
  .filter-bar button {
    padding: 3px 10px; border: 1px solid #ccc; border-radius: 4px;
    background: #f5f5f5; cursor: pointer;
  }
  .filter-bar button:hover { background: #e8e8e8; }
  .filter-count { margin-left: auto; font-weight: bold; color: #333; }
  .filter-section {
    display: inline-flex; align-items: center; gap: 4px;
    padding: 2px 6px; border: 1px solid #e0e0e0; border-radius: 4px;
    background: #f8f8f8;
  }
  .filter-section-label { font-size: 11px; color: #888; font-weight: bold; }
  .toggle-btn.off { background: #fce4e4; }
  .sep { width: 1px; height: 18px; background: #ddd; margin: 0 4px; }
  .main-content { display: flex; height: calc(100vh - 120px); }
  .chart-area { flex: 1; min-width: 0; overflow: hidden; }
  .studio-list-panel {
    width: 300px; border-left: 1px solid #ddd;
    display: flex; flex-direction: column; flex-shrink: 0;
  }
  .studio-list-header {
    padding: 10px 12px; background: #f5f5f5;
    border-bottom: 1px solid #ddd; font-weight: bold; font-size: 13px;
  }
  .studio-list-body { overflow-y: auto; flex: 1; }
  .studio-item {
    padding: 8px 12px; border-bottom: 1px solid #eee; font-size: 12px;
  }
  .studio-item.hidden { display: none; }
  .studio-item .name { font-weight: bold; }
  .studio-item .meta { color: #888; font-size: 11px; margin-top: 2px; }
  .studio-item .works { color: #666; font-size: 11px; margin-top: 2px; }
  .studio-item .badges { margin-top: 3px; display: flex; gap: 4px; flex-wrap: wrap; }
  .studio-item .badge {
    display: inline-block; padding: 1px 6px; border-radius: 3px;
    font-size: 10px; font-weight: bold; color: white;
  }
  .badge-ai-none { background: #BDBDBD; }
  .badge-ai-experimental { background: #FFC107; color: #333; }
  .badge-ai-production { background: #4CAF50; }
  .badge-ai-core { background: #FFD700; color: #333; }
  .badge-own-independent { background: #27AE60; }
  .badge-own-subsidiary { background: #2980B9; }
  .badge-own-group { background: #8E44AD; }
  .region-dot {
    display: inline-block; width: 8px; height: 8px;
    border-radius: 50%; margin-right: 4px; vertical-align: middle;
  }
</style>
</head>
<body>
<div class="view-bar">
{{- range .Buttons}}
  <button class="view-btn" data-view="{{.Key}}" onclick="switchView('{{.Key}}')">{{.Label}}</button>
{{- end}}
  <span class="sep"></span>
  <button id="toggle-lines" class="toggle-btn" onclick="toggleLines()">Trajectories: ON</button>
  <button id="toggle-yscale" class="toggle-btn" onclick="toggleYScale()">Y axis: log</button>
  <button onclick="resetMapPosition()">Reset zoom</button>
  <label>Text:</label>
  <input type="number" id="text-size" value="9" min="4" max="24" step="1" style="width:50px;">
  <button onclick="applyTextSize()">Apply</button>
</div>
<div class="filter-bar">
  <label>Founded:</label>
  <input type="number" id="filter-year-min" placeholder="min" min="1900" max="2030">
  <span>–</span>
  <input type="number" id="filter-year-max" placeholder="max" min="1900" max="2030">
  <span class="sep"></span>
  <label><input type="checkbox" id="filter-domestic" checked> Domestic</label>
  <label><input type="checkbox" id="filter-international" checked> International</label>
  <span class="sep"></span>
  <label>Staff:</label>
  <input type="number" id="filter-size-min" placeholder="min" min="0">
  <span>–</span>
  <input type="number" id="filter-size-max" placeholder="max" min="0">
  <span class="sep"></span>
  <label>Search:</label>
  <input type="text" id="filter-search" placeholder="name, works...">
  <span class="sep"></span>
  <div class="filter-section">
    <span class="filter-section-label">AI:</span>
    <label><input type="checkbox" id="filter-ai-none" checked> None</label>
    <label><input type="checkbox" id="filter-ai-experimental" checked> Experimental</label>
    <label><input type="checkbox" id="filter-ai-production" checked> Production</label>
    <label><input type="checkbox" id="filter-ai-core" checked> Core</label>
  </div>
  <span class="sep"></span>
  <div class="filter-section">
    <span class="filter-section-label">Ownership:</span>
    <label><input type="checkbox" id="filter-own-independent" checked> Independent</label>
    <label><input type="checkbox" id="filter-own-subsidiary" checked> Subsidiary</label>
    <label><input type="checkbox" id="filter-own-group" checked> Group</label>
  </div>
  <span class="sep"></span>
  <button onclick="applyFilters()">Apply</button>
  <button onclick="resetFilters()">Reset</button>
  <span class="filter-count" id="filter-count">Showing {{.Total}}/{{.Total}}</span>
</div>
<div class="main-content">
  <div class="chart-area"><div id="chart"></div></div>
  <div class="studio-list-panel">
    <div class="studio-list-header">Studios (<span id="list-count">{{.Total}}</span>)</div>
    <div class="studio-list-body" id="studio-list-body"></div>
  </div>
</div>
<script>
var TRACES = {{.Traces}};
var BASE_LAYOUT = {{.BaseLayout}};
var LAYOUTS = {{.Layouts}};
var VIS_MAP = {{.Visibility}};
var STUDIOS = {{.Studios}};
var TRACE_POINT_MAP = {{.PointMaps}};
var GROWTH_LINE_STUDIOS = {{.LineGroups}};
var growthLineIndices = {{.LineIndices}};
var SIZE_ATTR = {{.SizeAttrs}};
var Y_LINEAR = {{.YLinear}};
var HOVER_SEP = {{.HoverSep}};
var AI_LABELS = {{.AILabels}};
var OWN_LABELS = {{.OwnLabels}};

var currentView = '{{.InitialView}}';
var isLogScale = true;
var linesVisible = true;
var totalStudios = STUDIOS.length;
var _originalData = {};
var isProximityHover = false;

var chart = document.getElementById('chart');
Plotly.newPlot(chart, TRACES, BASE_LAYOUT, {responsive: true});

function initOriginalData() {
  for (var i = 0; i < chart.data.length; i++) {
    var d = chart.data[i];
    _originalData[i] = {
      x: d.x ? d.x.slice() : null,
      y: d.y ? d.y.slice() : null,
      hovertext: d.hovertext ? d.hovertext.slice() : null,
      text: d.text ? d.text.slice() : null,
      marker_opacity: d.marker ? (Array.isArray(d.marker.opacity) ? d.marker.opacity.slice() : d.marker.opacity) : null,
      textfont_color: d.textfont ? (Array.isArray(d.textfont.color) ? d.textfont.color.slice() : d.textfont.color) : null,
    };
  }
}

function visibilityFor(view) {
  var vis = VIS_MAP[view].slice();
  if (!linesVisible) {
    for (var i = 0; i < growthLineIndices.length; i++) vis[growthLineIndices[i]] = false;
  }
  return vis;
}

function switchView(view) {
  currentView = view;
  isLogScale = LAYOUTS[view]['yaxis.type'] === 'log';
  Plotly.update(chart, { visible: visibilityFor(view) }, LAYOUTS[view]);
  var btns = document.querySelectorAll('.view-btn');
  for (var i = 0; i < btns.length; i++) {
    btns[i].className = 'view-btn' + (btns[i].getAttribute('data-view') === view ? ' active' : '');
  }
  var yBtn = document.getElementById('toggle-yscale');
  yBtn.textContent = isLogScale ? 'Y axis: log' : 'Y axis: linear';
  applyFilters();
}

function studioMatchesFilter(studio) {
  var yearMin = document.getElementById('filter-year-min').value;
  var yearMax = document.getElementById('filter-year-max').value;
  var showDom = document.getElementById('filter-domestic').checked;
  var showIntl = document.getElementById('filter-international').checked;
  var sizeMin = document.getElementById('filter-size-min').value;
  var sizeMax = document.getElementById('filter-size-max').value;
  var searchText = document.getElementById('filter-search').value.toLowerCase().trim();

  if (studio.region === 'domestic' && !showDom) return false;
  if (studio.region === 'international' && !showIntl) return false;

  if (yearMin && studio.founded && studio.founded < parseInt(yearMin)) return false;
  if (yearMax && studio.founded && studio.founded > parseInt(yearMax)) return false;

  var sizeVal = studio[SIZE_ATTR[currentView]];
  if (sizeMin && sizeVal < parseInt(sizeMin)) return false;
  if (sizeMax && sizeVal > parseInt(sizeMax)) return false;

  if (searchText) {
    var haystack = (studio.name + ' ' + (studio.name_en || '') + ' ' + (studio.notable_works || []).join(' ')).toLowerCase();
    if (haystack.indexOf(searchText) === -1) return false;
  }

  var aiLevel = studio.ai_adoption_level || 'none';
  if (aiLevel === 'none' && !document.getElementById('filter-ai-none').checked) return false;
  if (aiLevel === 'experimental' && !document.getElementById('filter-ai-experimental').checked) return false;
  if (aiLevel === 'production' && !document.getElementById('filter-ai-production').checked) return false;
  if (aiLevel === 'core' && !document.getElementById('filter-ai-core').checked) return false;

  var ownType = studio.ownership_type || 'independent';
  if (ownType === 'independent' && !document.getElementById('filter-own-independent').checked) return false;
  if (ownType === 'subsidiary' && !document.getElementById('filter-own-subsidiary').checked) return false;
  if (ownType === 'group_company' && !document.getElementById('filter-own-group').checked) return false;

  return true;
}

function applyFilters() {
  var matchResults = STUDIOS.map(function(s) { return studioMatchesFilter(s); });
  var matchCount = matchResults.filter(function(m) { return m; }).length;
  document.getElementById('filter-count').textContent = 'Showing ' + matchCount + '/' + totalStudios;
  updateStudioList(matchResults);

  for (var trIdx in TRACE_POINT_MAP) {
    var ti = parseInt(trIdx);
    var pointMap = TRACE_POINT_MAP[trIdx];
    var orig = _originalData[ti];
    if (!orig || !orig.x) continue;

    var newOpacity = [];
    var newTextColor = [];
    var newHovertext = [];
    var baseTextColor = orig.textfont_color;
    var baseOpacity = orig.marker_opacity;

    for (var pi = 0; pi < pointMap.length; pi++) {
      var studioIndices = pointMap[pi];
      var anyMatch = studioIndices.some(function(si) { return matchResults[si]; });

      if (anyMatch) {
        newOpacity.push(typeof baseOpacity === 'number' ? baseOpacity : (baseOpacity ? baseOpacity[pi] : 1));
        newTextColor.push(typeof baseTextColor === 'string' ? baseTextColor : (baseTextColor ? baseTextColor[pi] : '#000'));
        if (studioIndices.length > 1 && orig.hovertext) {
          var parts = orig.hovertext[pi].split(HOVER_SEP);
          var kept = [];
          for (var si = 0; si < studioIndices.length; si++) {
            if (matchResults[studioIndices[si]] && parts[si]) kept.push(parts[si]);
          }
          newHovertext.push(kept.join(HOVER_SEP));
        } else {
          newHovertext.push(orig.hovertext ? orig.hovertext[pi] : '');
        }
      } else {
        newOpacity.push(0);
        newTextColor.push('rgba(0,0,0,0)');
        newHovertext.push('');
      }
    }

    Plotly.restyle(chart, {
      'marker.opacity': [newOpacity],
      'textfont.color': [newTextColor],
      'hovertext': [newHovertext],
    }, [ti]);
  }

  for (var glIdx in GROWTH_LINE_STUDIOS) {
    var gli = parseInt(glIdx);
    var studioList = GROWTH_LINE_STUDIOS[glIdx];
    var lorig = _originalData[gli];
    if (!lorig || !lorig.x) continue;

    var newX = lorig.x.slice();
    var newY = lorig.y.slice();
    for (var li = 0; li < studioList.length; li++) {
      if (!matchResults[studioList[li]]) {
        newX[li * 3] = null;
        newX[li * 3 + 1] = null;
        newY[li * 3] = null;
        newY[li * 3 + 1] = null;
      }
    }
    Plotly.restyle(chart, { x: [newX], y: [newY] }, [gli]);
  }
}

function resetFilters() {
  document.getElementById('filter-year-min').value = '';
  document.getElementById('filter-year-max').value = '';
  document.getElementById('filter-domestic').checked = true;
  document.getElementById('filter-international').checked = true;
  document.getElementById('filter-size-min').value = '';
  document.getElementById('filter-size-max').value = '';
  document.getElementById('filter-search').value = '';
  document.getElementById('filter-ai-none').checked = true;
  document.getElementById('filter-ai-experimental').checked = true;
  document.getElementById('filter-ai-production').checked = true;
  document.getElementById('filter-ai-core').checked = true;
  document.getElementById('filter-own-independent').checked = true;
  document.getElementById('filter-own-subsidiary').checked = true;
  document.getElementById('filter-own-group').checked = true;

  for (var trIdx in TRACE_POINT_MAP) {
    var ti = parseInt(trIdx);
    var orig = _originalData[ti];
    if (!orig) continue;
    var baseOpacity = orig.marker_opacity;
    var opArr = [];
    if (typeof baseOpacity === 'number') {
      for (var p = 0; p < orig.x.length; p++) opArr.push(baseOpacity);
    } else if (Array.isArray(baseOpacity)) {
      opArr = baseOpacity.slice();
    }
    Plotly.restyle(chart, {
      'marker.opacity': [opArr.length > 0 ? opArr : orig.marker_opacity],
      'textfont.color': [orig.textfont_color],
      'hovertext': [orig.hovertext],
    }, [ti]);
  }
  for (var glIdx in GROWTH_LINE_STUDIOS) {
    var gli = parseInt(glIdx);
    var orig2 = _originalData[gli];
    if (!orig2) continue;
    Plotly.restyle(chart, { x: [orig2.x], y: [orig2.y] }, [gli]);
  }

  document.getElementById('filter-count').textContent = 'Showing ' + totalStudios + '/' + totalStudios;
  var allItems = document.querySelectorAll('.studio-item');
  for (var ai = 0; ai < allItems.length; ai++) allItems[ai].classList.remove('hidden');
  document.getElementById('list-count').textContent = totalStudios;
}

function buildStudioList() {
  var container = document.getElementById('studio-list-body');
  var html = '';
  for (var i = 0; i < STUDIOS.length; i++) {
    var s = STUDIOS[i];
    var dotColor = s.region === 'domestic' ? '#3498DB' : '#E74C3C';
    var regionLabel = s.region === 'domestic' ? 'Domestic' : 'International';
    var works = (s.notable_works || []).slice(0, 2).join(', ');
    var sizeText = s.size_current_num ? s.size_current_num + ' staff' : '? staff';
    var foundedText = s.founded ? 'est. ' + s.founded : 'est. ?';
    var parentText = s.parent_company ? ' | ' + s.parent_company : '';
    var aiLevel = s.ai_adoption_level || 'none';
    var ownType = s.ownership_type || 'independent';
    var ownClass = 'badge-own-' + (ownType === 'group_company' ? 'group' : ownType);

    html += '<div class="studio-item" data-idx="' + i + '">'
      + '<div class="name"><span class="region-dot" style="background:' + dotColor + '"></span>' + s.name + '</div>'
      + '<div class="meta">' + regionLabel + ' | ' + foundedText + ' | ' + sizeText + parentText + '</div>'
      + '<div class="badges">'
      + '<span class="badge badge-ai-' + aiLevel + '">AI: ' + (AI_LABELS[aiLevel] || aiLevel) + '</span>'
      + '<span class="badge ' + ownClass + '">' + (OWN_LABELS[ownType] || ownType) + '</span>'
      + '</div>'
      + (works ? '<div class="works">' + works + '</div>' : '')
      + '</div>';
  }
  container.innerHTML = html;
}

function updateStudioList(matchResults) {
  var items = document.querySelectorAll('.studio-item');
  var visibleCount = 0;
  for (var i = 0; i < items.length; i++) {
    var idx = parseInt(items[i].getAttribute('data-idx'));
    if (matchResults[idx]) {
      items[i].classList.remove('hidden');
      visibleCount++;
    } else {
      items[i].classList.add('hidden');
    }
  }
  document.getElementById('list-count').textContent = visibleCount;
}

function toggleLines() {
  linesVisible = !linesVisible;
  Plotly.restyle(chart, { visible: linesVisible && currentView === 'growth' }, growthLineIndices);
  var btn = document.getElementById('toggle-lines');
  btn.textContent = linesVisible ? 'Trajectories: ON' : 'Trajectories: OFF';
  btn.className = 'toggle-btn' + (linesVisible ? '' : ' off');
}

function toggleYScale() {
  isLogScale = !isLogScale;
  var layout = LAYOUTS[currentView];
  Plotly.relayout(chart, {
    'yaxis.type': isLogScale ? 'log' : 'linear',
    'yaxis.range': isLogScale ? layout['yaxis.range'].slice() : Y_LINEAR[currentView].slice(),
  });
  var btn = document.getElementById('toggle-yscale');
  btn.textContent = isLogScale ? 'Y axis: log' : 'Y axis: linear';
}

function resetMapPosition() {
  var layout = LAYOUTS[currentView];
  Plotly.relayout(chart, {
    'xaxis.range': layout['xaxis.range'].slice(),
    'yaxis.range': isLogScale ? layout['yaxis.range'].slice() : Y_LINEAR[currentView].slice(),
  });
}

function applyTextSize() {
  var size = parseInt(document.getElementById('text-size').value);
  if (isNaN(size) || size < 4 || size > 24) return;
  var indices = [];
  for (var i = 0; i < chart.data.length; i++) {
    if (chart.data[i].mode && chart.data[i].mode.indexOf('text') !== -1) indices.push(i);
  }
  if (indices.length > 0) Plotly.restyle(chart, { 'textfont.size': size }, indices);
}

function setupProximityHover() {
  chart.on('plotly_hover', function(data) {
    if (isProximityHover) return;
    var xaxis = chart._fullLayout.xaxis;
    var yaxis = chart._fullLayout.yaxis;
    var hoverPt = data.points[0];
    var hx = xaxis.d2p(hoverPt.x);
    var hy = yaxis.d2p(hoverPt.y);
    var threshold = 50;

    var nearbyPoints = [];
    chart.data.forEach(function(trace, ci) {
      if (!trace.visible || trace.visible === false) return;
      if (!trace.x || !trace.hovertext) return;
      trace.x.forEach(function(x, pi) {
        if (x == null) return;
        var px = xaxis.d2p(x);
        var py = yaxis.d2p(trace.y[pi]);
        var dist = Math.sqrt(Math.pow(px - hx, 2) + Math.pow(py - hy, 2));
        if (dist <= threshold) nearbyPoints.push({ curveNumber: ci, pointNumber: pi });
      });
    });

    if (nearbyPoints.length > 1) {
      isProximityHover = true;
      Plotly.Fx.hover(chart, nearbyPoints);
      isProximityHover = false;
    }
  });
}

window.addEventListener('load', function() {
  setTimeout(function() {
    buildStudioList();
    initOriginalData();
    setupProximityHover();
    var btns = document.querySelectorAll('.view-btn');
    for (var i = 0; i < btns.length; i++) {
      if (btns[i].getAttribute('data-view') === currentView) btns[i].className = 'view-btn active';
    }
  }, 300);
});
</script>
</body>
</html>
`
