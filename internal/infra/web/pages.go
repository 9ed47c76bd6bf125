package web

import "html/template"

var indexPage = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="es">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>Marvel — tu compañera de español</title>
<style>
body{font-family:system-ui,Arial,sans-serif;margin:1rem;max-width:640px}
#log{border:1px solid #ddd;border-radius:12px;padding:12px;min-height:240px;margin-bottom:8px;white-space:pre-wrap}
.u{color:#333;margin:6px 0}.a{color:#0b536b;margin:6px 0}
.row{display:flex;gap:8px}
input,select,button{padding:8px;border-radius:8px;border:1px solid #888}
input{flex:1}
.small{font-size:12px;color:#666;margin-top:6px}
</style>
</head>
<body>
<h2>Marvel 🌴</h2>
<div id="log"></div>
<div class="row">
  <input id="msg" placeholder="Escríbeme algo…" />
  <select id="level">
    <option>A1</option><option selected>A2</option><option>B1</option><option>B2</option>
  </select>
  <button onclick="send()">Enviar</button>
</div>
<div class="small" id="turns"></div>
<script>
async function send(){
  const input=document.getElementById('msg');
  const text=input.value.trim();
  if(!text) return;
  input.value='';
  const log=document.getElementById('log');
  log.innerHTML += '<div class="u">Tú: '+text.replace(/</g,'&lt;')+'</div>';
  const res=await fetch('/api/chat',{method:'POST',headers:{'Content-Type':'application/json'},
    body:JSON.stringify({message:text,level:document.getElementById('level').value})});
  const data=await res.json();
  log.innerHTML += '<div class="a">Marvel: '+(data.reply||data.error||'').replace(/</g,'&lt;')+'</div>';
  if(data.turn_count) document.getElementById('turns').textContent='Turnos: '+data.turn_count;
  log.scrollTop=log.scrollHeight;
}
document.getElementById('msg').addEventListener('keydown',e=>{if(e.key==='Enter')send();});
</script>
</body>
</html>`))

var launchPage = template.Must(template.New("launch").Parse(`<!doctype html>
<html lang="es">
<head>
<meta charset="utf-8" />
<meta http-equiv="refresh" content="0; url=/" />
<title>Marvel</title>
</head>
<body>
<p>Hola{{if .Name}}, {{.Name}}{{end}}. Entrando al chat…</p>
</body>
</html>`))
