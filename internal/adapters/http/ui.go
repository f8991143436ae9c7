package http

import "net/http"

// Index serves the embedded single-page UI.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Vending Machine Simulator</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
        h1 { font-size: 1.4rem; }
        .controls { display: flex; gap: .5rem; flex-wrap: wrap; margin: 1rem 0; }
        button { padding: .4rem .8rem; cursor: pointer; }
        #status { margin: 1rem 0; padding: .8rem; background: #f5f5f5; border-radius: 6px; }
        #dispensed { color: #2e7d32; font-weight: bold; }
        #graph { border: 1px solid #ddd; border-radius: 6px; padding: 1rem; overflow-x: auto; }
        #history { font-family: monospace; font-size: .85rem; white-space: pre; }
    </style>
</head>
<body>
<h1>Vending Machine Simulator</h1>
<p>Eye Drop RM35 &middot; Vitamin RM50</p>

<div class="controls">
    <select id="kind">
        <option value="single">Single-Path DFA</option>
        <option value="dual">Dual-Path DFA</option>
        <option value="nfa">NFA</option>
    </select>
    <button onclick="startSession()">New Session</button>
    <button onclick="resetSession()">Reset</button>
</div>

<div class="controls" id="symbols"></div>

<div id="status">No session. Pick a machine and press New Session.</div>
<div id="dispensed"></div>
<div id="graph"></div>
<details><summary>History</summary><div id="history"></div></details>

<script type="module">
import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.esm.min.mjs";
mermaid.initialize({ startOnLoad: false });

let sessionID = null;

async function api(path, opts) {
    const res = await fetch(path, opts);
    if (!res.ok) throw new Error(await res.text());
    const ct = res.headers.get("content-type") || "";
    return ct.includes("json") ? res.json() : res.text();
}

async function renderGraph() {
    if (!sessionID) return;
    const src = await api("/sessions/" + sessionID + "/graph");
    const { svg } = await mermaid.render("machine", src);
    document.getElementById("graph").innerHTML = svg;
}

function showState(state) {
    const ready = [];
    if (state.can_buy_eye_drop) ready.push("Eye Drop ready");
    if (state.can_buy_vitamin) ready.push("Vitamin ready");
    document.getElementById("status").textContent =
        state.kind + " | state: " + state.current.join(", ") +
        " | balance: RM" + state.balance +
        (ready.length ? " | " + ready.join(", ") : "");
    document.getElementById("history").textContent = (state.history || [])
        .map((r, i) => (i + 1) + ". " + r.before.join(",") + " --" + r.symbol + "--> " + r.after.join(","))
        .join("\n");
}

async function loadSymbols(kind) {
    const def = await api("/machines/" + kind);
    const el = document.getElementById("symbols");
    el.innerHTML = "";
    for (const sym of def.alphabet) {
        const b = document.createElement("button");
        b.textContent = sym;
        b.onclick = () => insert(sym);
        el.appendChild(b);
    }
}

window.startSession = async () => {
    const kind = document.getElementById("kind").value;
    const state = await api("/sessions", {
        method: "POST",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({ kind }),
    });
    sessionID = state.id;
    document.getElementById("dispensed").textContent = "";
    await loadSymbols(kind);
    showState(state);
    await renderGraph();
};

window.resetSession = async () => {
    if (!sessionID) return;
    const state = await api("/sessions/" + sessionID + "/reset", { method: "POST" });
    document.getElementById("dispensed").textContent = "";
    showState(state);
    await renderGraph();
};

async function insert(symbol) {
    if (!sessionID) return;
    const resp = await api("/sessions/" + sessionID + "/symbols", {
        method: "POST",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({ symbol }),
    });
    document.getElementById("dispensed").textContent =
        resp.record.dispensed ? "Dispensed: " + resp.record.dispensed : "";
    showState(resp.state);
    await renderGraph();
}
</script>
</body>
</html>
`
