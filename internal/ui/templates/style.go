package templates

const stylesheet = `
*{box-sizing:border-box}
body{margin:0;font-family:system-ui,-apple-system,"Segoe UI",sans-serif;color:#0f172a;background:#f8fafc}
.layout{display:flex;min-height:100vh}
.sidebar{width:260px;padding:1.5rem;background:#fff;border-right:1px solid #e2e8f0}
.sidebar label{display:block;margin:0 0 1rem;font-size:.9rem}
.sidebar label.inline{display:flex;gap:.5rem;align-items:center}
.sidebar select,.sidebar input[type=range],.sidebar input[type=number]{display:block;width:100%;margin-top:.35rem}
.sidebar .export{display:inline-block;margin-top:1rem}
main{flex:1;padding:1.5rem 2rem;min-width:0}
.tabs{display:flex;gap:.5rem;border-bottom:1px solid #e2e8f0;margin-bottom:1rem}
.tabs button{border:0;background:none;padding:.6rem 1rem;cursor:pointer;border-bottom:2px solid transparent}
.tabs button.active{border-color:#2563eb;color:#2563eb}
.metrics{display:flex;gap:2rem;margin:1rem 0}
.metric span{display:block;font-size:.85rem;color:#475569}
.metric strong{font-size:1.6rem}
.columns{display:grid;grid-template-columns:1fr 1fr;gap:1.5rem}
.columns svg{width:100%;height:auto;margin-bottom:1rem}
.data-table{width:100%;border-collapse:collapse;font-size:.85rem;margin-bottom:1.5rem}
.data-table th,.data-table td{padding:.4rem .6rem;border-bottom:1px solid #e2e8f0;text-align:left}
.data-table td.num{text-align:right;font-variant-numeric:tabular-nums}
.banner{padding:.8rem 1rem;margin-bottom:1rem;border-radius:6px;background:#fef2f2;color:#991b1b;border:1px solid #fecaca}
.placeholder,.note{color:#64748b}
`
