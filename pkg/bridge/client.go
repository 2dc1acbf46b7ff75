package bridge

import "github.com/vango-dev/hashroute/pkg/vdom"

// RootID is the id of the element the client renders into.
const RootID = "hashroute-root"

// Root returns the empty mount point for the client.
func Root() *vdom.VNode {
	return vdom.Div(vdom.ID(RootID))
}

// ClientScript connects to Path, mirrors the URL fragment and applies
// server frames. It is inlined into the page shell.
const ClientScript = `
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function send(msg) {
        if (ws && ws.readyState === WebSocket.OPEN) {
            ws.send(JSON.stringify(msg));
        }
    }

    function root() {
        return document.getElementById('` + RootID + `');
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '` + Path + `');

        ws.onopen = function() {
            reconnectDelay = 1000;
            send({type: 'hello', hash: location.hash});
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            switch (msg.type) {
                case 'render':
                    root().innerHTML = msg.html;
                    break;

                case 'push':
                    if (location.hash !== msg.hash) {
                        location.hash = msg.hash;
                    }
                    break;

                case 'replace':
                    history.replaceState(history.state, '', msg.hash || '#');
                    break;

                case 'error':
                    console.warn('[hashroute]', msg.error);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    window.addEventListener('hashchange', function() {
        send({type: 'hashchange', hash: location.hash});
    });

    document.addEventListener('click', function(e) {
        var el = e.target.closest('[data-hid][data-on-click]');
        if (!el) {
            return;
        }
        e.preventDefault();
        send({type: 'event', hid: el.getAttribute('data-hid'), event: 'click'});
    });

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
`
